package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/football-insights/external/espn"
	"github.com/riskibarqy/football-insights/external/footballdata"
	"github.com/riskibarqy/football-insights/internal/config"
	"github.com/riskibarqy/football-insights/internal/domain/importance"
	"github.com/riskibarqy/football-insights/internal/domain/matchday"
	"github.com/riskibarqy/football-insights/internal/interfaces/httpapi"
	"github.com/riskibarqy/football-insights/internal/platform/cache"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
	"github.com/riskibarqy/football-insights/internal/platform/metrics"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

// Components holds everything NewHTTPServer builds, so callers can reach the
// recorder and cache without re-wiring.
type Components struct {
	Server  *http.Server
	Metrics *metrics.Recorder
	Cache   *cache.Store
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*Components, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	tables, err := importance.LoadTables(cfg.ScoringTablesPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring tables: %w", err)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var (
		recorder     *metrics.Recorder
		callRecorder usecase.CallRecorder
		observer     httpapi.HTTPObserver
		metricsRoute http.Handler
	)
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
		recorder.TrackCircuitBreakers(footballdata.ProviderName, espn.ProviderName)
		recorder.TrackCache(store)
		callRecorder = recorder
		observer = recorder
		metricsRoute = recorder.Handler()
	}

	footballDataClient := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:        cfg.FootballData.BaseURL,
		Token:          cfg.FootballData.APIKey,
		Timeout:        cfg.FootballData.Timeout,
		MaxRetries:     cfg.FootballData.MaxRetries,
		Logger:         logger.Named("football-data"),
		CircuitBreaker: cfg.FootballData.Circuit,
	})
	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:        cfg.ESPN.BaseURL,
		Timeout:        cfg.ESPN.Timeout,
		Logger:         logger.Named("espn"),
		CircuitBreaker: cfg.ESPN.Circuit,
	})
	logger.Info("providers configured",
		"football_data_host", hostOf(cfg.FootballData.BaseURL),
		"football_data_token_set", cfg.FootballData.APIKey != "",
		"espn_host", hostOf(cfg.ESPN.BaseURL),
	)

	merger := usecase.NewSourceMerger(
		espnClient,
		footballDataClient,
		mergePolicy(cfg.Merge),
		callRecorder,
		logger.Named("merger"),
	)

	handler := httpapi.NewHandler(
		usecase.NewMatchesTodayService(merger, importance.NewScorer(tables), matchday.NewClassifier(tables)),
		usecase.NewTeamAnalysisService(footballDataClient, logger.Named("team-analysis")),
		usecase.NewCatalogService(footballDataClient, store),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     metricsRoute,
		Observer:           observer,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return &Components{Server: server, Metrics: recorder, Cache: store}, nil
}

// mergePolicy overlays the configured values on the merger defaults.
func mergePolicy(cfg config.MergeConfig) usecase.MergePolicy {
	policy := usecase.DefaultMergePolicy()
	if len(cfg.Leagues) > 0 {
		policy.Leagues = make([]usecase.LeagueSource, 0, len(cfg.Leagues))
		for _, league := range cfg.Leagues {
			policy.Leagues = append(policy.Leagues, usecase.LeagueSource{Code: league.Code, Name: league.Name})
		}
	}
	if cfg.PrimaryTimeout > 0 {
		policy.PrimaryTimeout = cfg.PrimaryTimeout
	}
	if cfg.ExtendedTimeout > 0 {
		policy.ExtendedTimeout = cfg.ExtendedTimeout
	}
	if cfg.FallbackTimeout > 0 {
		policy.FallbackTimeout = cfg.FallbackTimeout
	}
	if cfg.MaxWorkers > 0 {
		policy.MaxWorkers = cfg.MaxWorkers
	}
	policy.DedupeAcrossSources = cfg.DedupeAcrossSources
	return policy
}
