package httpapi

import (
	"net/http"
	"strings"
)

// GetMatchesToday serves the merged, scored matchday view. ?date=YYYY-MM-DD
// picks the reference day; it defaults to today in UTC.
func (h *Handler) GetMatchesToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesToday")
	defer span.End()

	req := matchesTodayRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.matchesTodayService.Get(ctx, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "get matches today failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesTodayToDTO(view))
}
