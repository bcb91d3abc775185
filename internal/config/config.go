package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
	"github.com/riskibarqy/football-insights/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	LogLevel           logging.Level
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string

	CacheEnabled   bool
	CacheTTL       time.Duration
	MetricsEnabled bool

	FootballData FootballDataConfig
	ESPN         ESPNConfig
	Merge        MergeConfig

	// ScoringTablesPath points to a YAML file overriding the built-in
	// competition and team tables. Empty keeps the defaults.
	ScoringTablesPath string

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

type FootballDataConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Circuit    resilience.CircuitBreakerConfig
}

type ESPNConfig struct {
	BaseURL string
	Timeout time.Duration
	Circuit resilience.CircuitBreakerConfig
}

type League struct {
	Code string
	Name string
}

// MergeConfig overrides parts of the merge policy. Zero values keep the
// policy defaults.
type MergeConfig struct {
	Leagues             []League
	PrimaryTimeout      time.Duration
	ExtendedTimeout     time.Duration
	FallbackTimeout     time.Duration
	MaxWorkers          int
	DedupeAcrossSources bool
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Load reads the environment, after merging an optional dotenv file named by
// APP_ENV_FILE (default .env). Variables already set win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("APP_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "football-insights-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ScoringTablesPath:  strings.TrimSpace(getEnv("SCORING_TABLES_PATH", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	// The merger may spend a primary, an extended and a fallback round.
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "45s"); err != nil {
		return Config{}, err
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "5m"); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = getEnvAsBool("METRICS_ENABLED", true); err != nil {
		return Config{}, err
	}

	if cfg.FootballData, err = loadFootballData(); err != nil {
		return Config{}, err
	}
	if cfg.ESPN, err = loadESPN(); err != nil {
		return Config{}, err
	}
	if cfg.Merge, err = loadMerge(); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsDev reports whether logs should use the console encoder.
func (c Config) IsDev() bool {
	return c.AppEnv == EnvDev
}

func loadFootballData() (FootballDataConfig, error) {
	out := FootballDataConfig{
		BaseURL: strings.TrimSpace(getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4")),
		APIKey:  strings.TrimSpace(getEnv("FOOTBALL_DATA_API_KEY", "")),
	}

	var err error
	if out.Timeout, err = getEnvAsDuration("FOOTBALL_DATA_TIMEOUT", "10s"); err != nil {
		return out, err
	}
	if out.MaxRetries, err = getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 0); err != nil {
		return out, fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	if out.MaxRetries < 0 {
		return out, fmt.Errorf("FOOTBALL_DATA_MAX_RETRIES must be >= 0")
	}
	if out.Circuit, err = loadCircuit("FOOTBALL_DATA"); err != nil {
		return out, err
	}
	return out, nil
}

func loadESPN() (ESPNConfig, error) {
	out := ESPNConfig{
		BaseURL: strings.TrimSpace(getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/soccer")),
	}

	var err error
	if out.Timeout, err = getEnvAsDuration("ESPN_TIMEOUT", "10s"); err != nil {
		return out, err
	}
	if out.Circuit, err = loadCircuit("ESPN"); err != nil {
		return out, err
	}
	return out, nil
}

func loadMerge() (MergeConfig, error) {
	var (
		out MergeConfig
		err error
	)
	if out.Leagues, err = parseLeagues(getEnv("SCOREBOARD_LEAGUES", "")); err != nil {
		return out, fmt.Errorf("parse SCOREBOARD_LEAGUES: %w", err)
	}
	if out.PrimaryTimeout, err = getEnvAsDuration("MERGE_PRIMARY_TIMEOUT", "10s"); err != nil {
		return out, err
	}
	if out.ExtendedTimeout, err = getEnvAsDuration("MERGE_EXTENDED_TIMEOUT", "8s"); err != nil {
		return out, err
	}
	if out.FallbackTimeout, err = getEnvAsDuration("MERGE_FALLBACK_TIMEOUT", "10s"); err != nil {
		return out, err
	}
	if out.MaxWorkers, err = getEnvAsInt("MERGE_MAX_WORKERS", 8); err != nil {
		return out, fmt.Errorf("parse MERGE_MAX_WORKERS: %w", err)
	}
	if out.MaxWorkers < 1 {
		return out, fmt.Errorf("MERGE_MAX_WORKERS must be >= 1")
	}
	if out.DedupeAcrossSources, err = getEnvAsBool("MERGE_DEDUPE_ACROSS_SOURCES", false); err != nil {
		return out, err
	}
	return out, nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return err
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", true); err != nil {
		return err
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

// loadCircuit reads <PREFIX>_CIRCUIT_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()
	out := resilience.CircuitBreakerConfig{}

	var err error
	if out.Enabled, err = getEnvAsBool(prefix+"_CIRCUIT_ENABLED", defaults.Enabled); err != nil {
		return out, err
	}

	key := prefix + "_CIRCUIT_FAILURE_COUNT"
	if out.FailureThreshold, err = getEnvAsInt(key, defaults.FailureThreshold); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}

	if out.OpenTimeout, err = getEnvAsDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()); err != nil {
		return out, err
	}

	key = prefix + "_CIRCUIT_HALF_OPEN_MAX_REQ"
	if out.HalfOpenMaxReq, err = getEnvAsInt(key, defaults.HalfOpenMaxReq); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}

	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("%s circuit: %w", strings.ToLower(prefix), err)
	}
	return out, nil
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects zero and negative durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// parseLeagues reads "eng.1:Premier League,esp.1:La Liga". Order is kept; it
// decides result order and which leagues the extended search probes.
func parseLeagues(raw string) ([]League, error) {
	items := splitCSV(raw)
	if len(items) == 0 {
		return nil, nil
	}

	out := make([]League, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		code, name, ok := strings.Cut(item, ":")
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if !ok || code == "" || name == "" {
			return nil, fmt.Errorf("invalid league item %q, expected code:Name", item)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("duplicate league code %q", code)
		}
		seen[code] = struct{}{}
		out = append(out, League{Code: code, Name: name})
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
