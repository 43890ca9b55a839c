package config

import (
	"log"
	"os"
	"strconv"

	"github.com/beer-league/faqbot/src/data"
	"gorm.io/gorm"
)

type Config struct {
	Token        string
	GuildID      string
	FAQChannelID string

	AnthropicKey string
	OpenAIKey    string
	AIProvider   string
	AIModel      string

	RulebookDocID string
	FallbackPath  string
	RefreshHours  int
	OpsListenAddr string
	OpsToken      string
}

// Load reads configuration from the settings table (when db is non-nil) with
// environment fallbacks, matching how the rest of the deployment is configured.
func Load(db *gorm.DB) Config {
	if db != nil {
		if err := data.LoadSettings(db); err != nil {
			log.Printf("Failed to load settings: %v", err)
		}
	}

	refreshHours := 24
	if v := setting("rulebook_refresh_hours", "RULEBOOK_REFRESH_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			refreshHours = n
		}
	}

	fallbackPath := setting("rulebook_fallback_path", "RULEBOOK_FALLBACK_PATH")
	if fallbackPath == "" {
		fallbackPath = "assets/rulebook.txt"
	}

	provider := setting("ai_provider", "AI_PROVIDER")
	if provider == "" {
		provider = "haiku"
	}

	return Config{
		Token:         setting("discord_token", "DISCORD_TOKEN"),
		GuildID:       setting("guild_id", "GUILD_ID"),
		FAQChannelID:  setting("faq_channel_id", "FAQ_CHANNEL_ID"),
		AnthropicKey:  setting("anthropic_api_key", "ANTHROPIC_API_KEY"),
		OpenAIKey:     setting("openai_api_key", "OPENAI_API_KEY"),
		AIProvider:    provider,
		AIModel:       setting("ai_model", "AI_MODEL"),
		RulebookDocID: setting("rulebook_doc_id", "RULEBOOK_DOC_ID"),
		FallbackPath:  fallbackPath,
		RefreshHours:  refreshHours,
		OpsListenAddr: setting("ops_listen_addr", "OPS_LISTEN_ADDR"),
		OpsToken:      setting("ops_token", "OPS_TOKEN"),
	}
}

func setting(name, envVar string) string {
	if v := data.GetSetting(name); v != "" {
		return v
	}
	return os.Getenv(envVar)
}
