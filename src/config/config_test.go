package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EnvironmentFallbacks(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("GUILD_ID", "guild")
	t.Setenv("RULEBOOK_DOC_ID", "doc-id")
	t.Setenv("RULEBOOK_REFRESH_HOURS", "6")
	t.Setenv("AI_PROVIDER", "gpt4o")

	cfg := Load(nil)

	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "guild", cfg.GuildID)
	assert.Equal(t, "doc-id", cfg.RulebookDocID)
	assert.Equal(t, 6, cfg.RefreshHours)
	assert.Equal(t, "gpt4o", cfg.AIProvider)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RULEBOOK_REFRESH_HOURS", "")
	t.Setenv("RULEBOOK_FALLBACK_PATH", "")
	t.Setenv("AI_PROVIDER", "")

	cfg := Load(nil)

	assert.Equal(t, 24, cfg.RefreshHours)
	assert.Equal(t, "assets/rulebook.txt", cfg.FallbackPath)
	assert.Equal(t, "haiku", cfg.AIProvider)
}

func TestLoad_IgnoresInvalidRefreshHours(t *testing.T) {
	t.Setenv("RULEBOOK_REFRESH_HOURS", "not-a-number")

	cfg := Load(nil)

	assert.Equal(t, 24, cfg.RefreshHours)
}
