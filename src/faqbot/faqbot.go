package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/beer-league/faqbot/src/ai/core"
	_ "github.com/beer-league/faqbot/src/ai/providers"
	"github.com/beer-league/faqbot/src/bot"
	"github.com/beer-league/faqbot/src/config"
	"github.com/beer-league/faqbot/src/data"
	"github.com/beer-league/faqbot/src/qa"
	"github.com/beer-league/faqbot/src/rulebook"
	"github.com/beer-league/faqbot/src/webserver"
)

func main() {
	// Settings table is optional; env vars cover everything when no DSN is set.
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db = data.MustMySQL(dsn)
	}

	cfg := config.Load(db)
	if cfg.Token == "" {
		log.Fatal("discord_token not set in database or environment")
	}
	if cfg.GuildID == "" {
		log.Fatal("guild_id not set in database or environment")
	}
	if cfg.RulebookDocID == "" {
		log.Fatal("rulebook_doc_id not set in database or environment")
	}

	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb = data.MustRedis(redisURL)
	}

	aiClient, err := core.NewClient(core.FactoryConfig{
		Provider:     cfg.AIProvider,
		Model:        cfg.AIModel,
		AnthropicKey: cfg.AnthropicKey,
		OpenAIKey:    cfg.OpenAIKey,
	})
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	fetcher := rulebook.NewFetcher(cfg.RulebookDocID)
	cache := rulebook.NewCache(fetcher.Fetch, cfg.FallbackPath)
	answers := qa.NewService(cache, aiClient, cfg.AIModel)

	b, err := bot.New(cfg, cache, answers, rdb)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if cfg.OpsListenAddr != "" {
		ops := webserver.New(webserver.Config{Token: cfg.OpsToken}, cache, b.Recent())
		go func() {
			if err := ops.Run(cfg.OpsListenAddr); err != nil {
				log.Printf("Ops server stopped: %v", err)
			}
		}()
	}

	log.Println("FAQ bot is running. Press CTRL-C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	log.Println("FAQ bot stopped gracefully")
}
