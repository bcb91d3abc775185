package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/platform/cache"
)

const (
	catalogCompetitionsKey = "catalog:competitions"
	catalogTeamsPrefix     = "catalog:teams"
)

// CatalogService passes competition and team listings through from the feed
// provider, optionally through a TTL cache.
type CatalogService struct {
	footballData feed.FootballDataClient
	cache        *cache.Store
}

// NewCatalogService builds the service. A nil store disables caching.
func NewCatalogService(footballData feed.FootballDataClient, store *cache.Store) *CatalogService {
	return &CatalogService{
		footballData: footballData,
		cache:        store,
	}
}

func (s *CatalogService) ListCompetitions(ctx context.Context) ([]feed.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCompetitions")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		return s.footballData.GetCompetitions(ctx)
	}
	value, err := s.load(ctx, catalogCompetitionsKey, load)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	items, _ := value.([]feed.Competition)
	return items, nil
}

func (s *CatalogService) ListTeams(ctx context.Context, competitionID string) ([]feed.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		return s.footballData.GetTeams(ctx, competitionID)
	}
	value, err := s.load(ctx, cache.Key(catalogTeamsPrefix, competitionID), load)
	if err != nil {
		return nil, fmt.Errorf("list teams competition_id=%s: %w", competitionID, err)
	}
	items, _ := value.([]feed.Team)
	return items, nil
}

func (s *CatalogService) load(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}
