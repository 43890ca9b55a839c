package logging

import "strings"

// IsRateLimit reports whether an upstream error looks like a model-API rate limit.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}
