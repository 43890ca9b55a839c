package discord

import "strings"

const (
	MaxDiscordMessageLen = 2000
	// SafeChunkLen leaves headroom under the hard Discord limit for reply
	// decorations the platform may add.
	SafeChunkLen = MaxDiscordMessageLen - 100
)

// SplitMessage splits a long response into Discord-friendly chunks of at most
// maxLen bytes, preferring to cut at the last newline inside the limit and
// hard-cutting when a run has none. Newlines at a cut point are dropped, so
// rejoining the chunks with single newlines reconstructs the original text.
func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > maxLen {
		splitAt := strings.LastIndex(text[:maxLen+1], "\n")
		if splitAt == -1 {
			splitAt = maxLen
		}
		chunks = append(chunks, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
