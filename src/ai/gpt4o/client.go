package gpt4o

import (
	"github.com/beer-league/faqbot/src/ai/core"
	"github.com/beer-league/faqbot/src/ai/openai"
)

const defaultModel = "gpt-4o-mini"

func init() {
	core.RegisterProvider("gpt4o", newClient, "openai")
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return openai.NewClient(cfg, defaultModel)
}
