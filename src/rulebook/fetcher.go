package rulebook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/beer-league/faqbot/src/webclient"
)

const (
	// MinDocumentLength guards against error pages or truncated exports
	// masquerading as a successful fetch.
	MinDocumentLength = 100

	fetchTimeout = 15 * time.Second
	maxDocBytes  = 500000
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Fetcher retrieves the rulebook text from its Google Docs plain-text export.
type Fetcher struct {
	exportURL  string
	httpClient *http.Client
}

// NewFetcher builds a Fetcher for the given Google Doc ID.
func NewFetcher(docID string) *Fetcher {
	return &Fetcher{
		exportURL:  fmt.Sprintf("https://docs.google.com/document/d/%s/export?format=txt", docID),
		httpClient: webclient.NewDefault(fetchTimeout),
	}
}

// Fetch downloads and normalizes the current rulebook text. Any transport,
// protocol, or validation problem is returned as an error; nothing panics.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.exportURL, nil)
	if err != nil {
		return "", fmt.Errorf("rulebook: build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rulebook: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rulebook: fetch: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocBytes))
	if err != nil {
		return "", fmt.Errorf("rulebook: read body: %w", err)
	}

	text := Normalize(string(raw))
	if len(text) < MinDocumentLength {
		return "", fmt.Errorf("rulebook: fetched text too short (%d chars)", len(text))
	}

	return text, nil
}

// Normalize cleans up export artifacts: BOM, NULs, zero-width spaces, runs of
// blank lines, and surrounding whitespace.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\u200B", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
