package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsQuietRequest(t *testing.T) {
	t.Parallel()

	if !isQuietRequest("http_request", []any{"http_method", "GET", "http_path", "/healthz"}) {
		t.Fatalf("health probes should be skipped")
	}
	if !isQuietRequest("http_request", []any{"http_path", "/metrics"}) {
		t.Fatalf("metric scrapes should be skipped")
	}
	if isQuietRequest("http_request", []any{"http_path", "/v1/matches/today"}) {
		t.Fatalf("api requests must be mirrored")
	}
	if isQuietRequest("provider call failed", []any{"http_path", "/healthz"}) {
		t.Fatalf("only http_request events are filtered")
	}
}

func TestLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := logAttributes([]any{"league", "eng.1", "normalized", 12, 7, "x", "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "league" || attrs[0].Value.AsString() != "eng.1" {
		t.Fatalf("unexpected league attribute %+v", attrs[0])
	}
	if attrs[1].Value.AsInt64() != 12 {
		t.Fatalf("unexpected normalized attribute %+v", attrs[1])
	}
	if attrs[2].Key != "arg_2" {
		t.Fatalf("non-string keys should be positional, got %s", attrs[2].Key)
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute %+v", attrs[3])
	}
}

func TestLogValue(t *testing.T) {
	t.Parallel()

	type outcome string
	cases := []struct {
		name string
		in   any
		kind otellog.Kind
	}{
		{"error", errors.New("boom"), otellog.KindString},
		{"duration", 1500 * time.Millisecond, otellog.KindString},
		{"named string", outcome("timeout"), otellog.KindString},
		{"uint16", uint16(8), otellog.KindInt64},
		{"float32", float32(0.5), otellog.KindFloat64},
		{"slice", []string{"espn", "football-data"}, otellog.KindSlice},
		{"map", map[string]any{"scoreboard": 3, "fallback": true}, otellog.KindMap},
		{"int keyed map", map[int]string{1: "a"}, otellog.KindString},
		{"nil pointer", (*int)(nil), otellog.KindEmpty},
	}
	for _, tc := range cases {
		if got := logValue(tc.in, 0).Kind(); got != tc.kind {
			t.Fatalf("%s: kind=%s want %s", tc.name, got, tc.kind)
		}
	}

	if v := logValue(map[string]any{"calls": 5}, 0).AsMap(); len(v) != 1 || v[0].Value.AsInt64() != 5 {
		t.Fatalf("unexpected map conversion %+v", v)
	}
}

func TestSeverityOf(t *testing.T) {
	t.Parallel()

	if severityOf(zapcore.WarnLevel) != otellog.SeverityWarn || severityOf(zapcore.DPanicLevel) != otellog.SeverityFatal {
		t.Fatalf("unexpected severity mapping")
	}
}
