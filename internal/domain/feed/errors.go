package feed

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

// UpstreamError is returned when a provider answers with a non-2xx status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s responded with status=%d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s responded with status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if crerr.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}
