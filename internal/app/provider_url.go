package app

import (
	"net/url"
	"strings"
)

// hostOf reduces a provider base URL to its host for startup logs, so
// credentials embedded in the URL never reach the log pipeline.
func hostOf(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "default"
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed == nil || parsed.Host == "" {
		return "invalid"
	}

	return parsed.Host
}
