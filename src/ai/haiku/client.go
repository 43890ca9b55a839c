package haiku

import (
	"github.com/beer-league/faqbot/src/ai/anthropic"
	"github.com/beer-league/faqbot/src/ai/core"
)

const defaultModel = "claude-3-5-haiku-20241022"

func init() {
	core.RegisterProvider("haiku", newClient, "anthropic", "claude")
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return anthropic.NewClient(cfg, defaultModel)
}
