package providers

import (
	_ "github.com/beer-league/faqbot/src/ai/gpt4o"
	_ "github.com/beer-league/faqbot/src/ai/haiku"
)
