package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "football-insights"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError checks the breaker sentinel before upstream statuses: an open
// breaker wraps the last upstream failure but must surface as 503.
func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	}

	if upstream, ok := feed.AsUpstreamError(err); ok {
		return mapUpstreamStatus(upstream.StatusCode)
	}

	return mappedError{
		HTTPStatus: http.StatusInternalServerError,
		Reason:     "internalError",
		Status:     "INTERNAL",
	}
}

// mapUpstreamStatus passes the provider's status through so a missing team
// stays a 404 and a rate limit stays a 429.
func mapUpstreamStatus(code int) mappedError {
	switch {
	case code == http.StatusBadRequest:
		return mappedError{HTTPStatus: code, Reason: "upstreamInvalidInput", Status: "INVALID_ARGUMENT"}
	case code == http.StatusUnauthorized:
		return mappedError{HTTPStatus: code, Reason: "upstreamUnauthorized", Status: "UNAUTHENTICATED"}
	case code == http.StatusForbidden:
		return mappedError{HTTPStatus: code, Reason: "upstreamForbidden", Status: "PERMISSION_DENIED"}
	case code == http.StatusNotFound:
		return mappedError{HTTPStatus: code, Reason: "notFound", Status: "NOT_FOUND"}
	case code == http.StatusTooManyRequests:
		return mappedError{HTTPStatus: code, Reason: "rateLimitExceeded", Status: "RESOURCE_EXHAUSTED"}
	case code >= 400 && code < 500:
		return mappedError{HTTPStatus: code, Reason: "upstreamRejected", Status: "FAILED_PRECONDITION"}
	default:
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamUnavailable", Status: "UNAVAILABLE"}
	}
}
