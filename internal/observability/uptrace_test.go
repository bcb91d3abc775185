package observability

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/football-insights/internal/config"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "football-insights-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestProfilersDisabled(t *testing.T) {
	cfg := config.Config{ServiceName: "football-insights-api"}

	stop, err := InitPyroscope(cfg, nil)
	if err != nil || stop == nil {
		t.Fatalf("disabled pyroscope should return a noop stop, err=%v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	srv := StartPprofServer(cfg, logging.NewNop())
	if err := srv.Stop(time.Second); err != nil {
		t.Fatalf("nil pprof server stop: %v", err)
	}
}
