package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-insights/internal/platform/id"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	// MetricsHandler is mounted on GET /metrics when set.
	MetricsHandler http.Handler
	Observer       HTTPObserver
	// IDGenerator mints request IDs; nil uses random 8 byte IDs.
	IDGenerator id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerPublicDomainRoutes(mux, handler)

	// RequestLogging and recoverPanic must hand the mux the same *http.Request
	// so the matched pattern is visible after it returns.
	var h http.Handler = recoverPanic(logger, mux)
	h = RequestLogging(logger, cfg.Observer, h)
	h = RequestID(cfg.IDGenerator, h)
	h = CORS(cfg.CORSAllowedOrigins, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
