package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/beer-league/faqbot/src/config"
	"github.com/beer-league/faqbot/src/discord"
	"github.com/beer-league/faqbot/src/qa"
	"github.com/beer-league/faqbot/src/rulebook"
)

const recentLogCapacity = 50

// Bot is the Discord adapter around the question-answering core.
type Bot struct {
	session *discordgo.Session
	cfg     config.Config

	cache   *rulebook.Cache
	answers *qa.Service
	recent  *RecentLog

	refreshEvery time.Duration

	mu           sync.RWMutex
	faqChannelID string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New wires a Discord session to the rulebook cache and answer service.
// rdb may be nil when no Redis deployment exists.
func New(cfg config.Config, cache *rulebook.Cache, answers *qa.Service, rdb *redis.Client) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &Bot{
		session:      dg,
		cfg:          cfg,
		cache:        cache,
		answers:      answers,
		recent:       NewRecentLog(recentLogCapacity, rdb),
		refreshEvery: time.Duration(cfg.RefreshHours) * time.Hour,
		faqChannelID: cfg.FAQChannelID,
		ctx:          ctx,
		cancel:       cancel,
	}

	dg.AddHandler(b.handleReady)
	dg.AddHandler(b.handleInteraction)
	dg.AddHandler(b.handleMessageCreate)

	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuilds

	return b, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	b.session.Close()
}

// Recent exposes the question log for the ops API.
func (b *Bot) Recent() *RecentLog {
	return b.recent
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Logged in as %s (id=%s)", event.User.Username, event.User.ID)

	if err := discord.RegisterSlashCommands(s, b.cfg.GuildID); err != nil {
		log.Printf("Failed to register slash commands: %v", err)
	} else {
		log.Printf("Slash commands synced")
	}

	if id := b.channelID(); id != "" {
		log.Printf("FAQ channel: %s", id)
	} else {
		log.Printf("No FAQ channel set, use /setchannel in Discord")
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.refreshLoop()
	}()
}

// refreshLoop re-fetches the rulebook at the configured interval for the life
// of the process. A failed refresh is logged and never stops future cycles.
func (b *Bot) refreshLoop() {
	ticker := time.NewTicker(b.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			if err := b.cache.Refresh(b.ctx); err != nil {
				log.Printf("Rulebook refresh task error: %v", err)
			}
		}
	}
}

func (b *Bot) channelID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.faqChannelID
}

func (b *Bot) setChannelID(id string) {
	b.mu.Lock()
	b.faqChannelID = id
	b.mu.Unlock()
}

func channelMention(id string) string {
	return fmt.Sprintf("<#%s>", id)
}
