package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	req := teamRequest{TeamID: strings.TrimSpace(r.PathValue("teamID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamAnalysisService.GetTeam(ctx, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailToDTO(team))
}

func (h *Handler) GetTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamAnalysis")
	defer span.End()

	req := teamRequest{TeamID: strings.TrimSpace(r.PathValue("teamID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.teamAnalysisService.GetTeamAnalysis(ctx, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team analysis failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamAnalysisToDTO(analysis))
}

func (h *Handler) GetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPlayers")
	defer span.End()

	req := teamRequest{TeamID: strings.TrimSpace(r.PathValue("teamID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.teamAnalysisService.GetTeamPlayers(ctx, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team players failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamPlayersToDTO(players))
}
