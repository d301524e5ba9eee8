package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// DerefString returns the value of p or "" when nil.
func DerefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
