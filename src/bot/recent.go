package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/beer-league/faqbot/src/data"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

// publishTimeout bounds the advisory stream publish so a hung Redis
// cannot block the interaction handler.
const publishTimeout = 3 * time.Second

// RecentEntry is one logged question.
type RecentEntry struct {
	ID       string    `json:"id"`
	Asker    string    `json:"asker"`
	Question string    `json:"question"`
	AskedAt  time.Time `json:"askedAt"`
}

// RecentLog keeps the last N asked questions in a fixed-capacity ring buffer.
// Entries are also published to Redis when a client is configured; publish
// failures are logged and ignored.
type RecentLog struct {
	mu        sync.Mutex
	entries   []RecentEntry
	next      int
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
}

// NewRecentLog creates a log holding at most capacity entries. rdb may be nil.
func NewRecentLog(capacity int, rdb *redis.Client) *RecentLog {
	if capacity <= 0 {
		capacity = 50
	}
	return &RecentLog{
		entries:   make([]RecentEntry, 0, capacity),
		rdb:       rdb,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Add records a question before it is dispatched for answering.
func (r *RecentLog) Add(asker, question string) RecentEntry {
	entry := RecentEntry{
		ID:       uuid.NewString(),
		Asker:    asker,
		Question: r.sanitizer.Sanitize(question),
		AskedAt:  time.Now(),
	}

	r.mu.Lock()
	if len(r.entries) < cap(r.entries) {
		r.entries = append(r.entries, entry)
	} else {
		r.entries[r.next] = entry
	}
	r.next = (r.next + 1) % cap(r.entries)
	r.mu.Unlock()

	if r.rdb != nil {
		// Advisory only: a slow or down Redis must never stall answering.
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		err := data.PublishQuestion(ctx, r.rdb, map[string]interface{}{
			"id":       entry.ID,
			"asker":    entry.Asker,
			"question": entry.Question,
			"time":     entry.AskedAt.Unix(),
		})
		if err != nil {
			log.Printf("recent: publish question: %v", err)
		}
	}

	return entry
}

// Snapshot returns the logged entries, newest first.
func (r *RecentLog) Snapshot() []RecentEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RecentEntry, 0, len(r.entries))
	for i := 0; i < len(r.entries); i++ {
		idx := (r.next - 1 - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}
