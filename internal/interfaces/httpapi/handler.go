package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

type Handler struct {
	matchesTodayService *usecase.MatchesTodayService
	teamAnalysisService *usecase.TeamAnalysisService
	catalogService      *usecase.CatalogService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	matchesTodayService *usecase.MatchesTodayService,
	teamAnalysisService *usecase.TeamAnalysisService,
	catalogService *usecase.CatalogService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchesTodayService: matchesTodayService,
		teamAnalysisService: teamAnalysisService,
		catalogService:      catalogService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type matchesTodayRequest struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

type competitionTeamsRequest struct {
	CompetitionID string `validate:"required,alphanum,max=16"`
}

type teamRequest struct {
	TeamID string `validate:"required,numeric,max=12"`
}
