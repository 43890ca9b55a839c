// ai-smoketest exercises the configured model providers against a local
// rulebook file, outside of Discord. Useful when rotating API keys or
// switching the default provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	aicore "github.com/beer-league/faqbot/src/ai/core"
	_ "github.com/beer-league/faqbot/src/ai/providers"
	"github.com/beer-league/faqbot/src/rulebook"
)

var (
	providersFlag = flag.String("providers", "haiku", "Comma-separated provider list")
	modelFlag     = flag.String("model", "", "Override model name")
	docFlag       = flag.String("doc", "assets/rulebook.txt", "Path to a rulebook text file")
	questionFlag  = flag.String("question", "How many players does a team need?", "Question to ask")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	raw, err := os.ReadFile(*docFlag)
	if err != nil {
		log.Fatalf("read rulebook: %v", err)
	}
	doc := rulebook.Normalize(string(raw))
	systemPrompt := rulebook.SystemPrompt(doc)

	failures := 0
	for _, provider := range strings.Split(*providersFlag, ",") {
		provider = strings.TrimSpace(provider)
		if provider == "" {
			continue
		}
		if err := run(provider, systemPrompt); err != nil {
			failures++
			log.Printf("[%s] FAIL: %v", provider, err)
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func run(provider, systemPrompt string) error {
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:     provider,
		Model:        *modelFlag,
		SystemPrompt: systemPrompt,
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	answer, err := client.AnswerQuestion(ctx, *questionFlag, aicore.Options{})
	if err != nil {
		return err
	}

	fmt.Printf("[%s] ok in %s\n%s\n\n", provider, time.Since(start).Round(time.Millisecond), answer)
	return nil
}
