package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	URL  string `env:"CONFPLAN_CMD_TEST_URL" envDefault:"ws://localhost:8090/ws"`
	Mode string `env:"CONFPLAN_CMD_TEST_MODE" envDefault:"live"`
}

func TestFlagsOverrideEnvDefaults(t *testing.T) {
	t.Setenv("CONFPLAN_CMD_TEST_URL", "ws://env:9000/ws")
	t.Setenv("CONFPLAN_CMD_TEST_MODE", "whatif")

	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfg.URL, "url", cfg.URL, "url")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")
	if err := ParseArgs(fs, []string{"-url", "ws://flag:9001/ws"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.URL != "ws://flag:9001/ws" {
		t.Fatalf("url = %q, want flag value", cfg.URL)
	}
	if cfg.Mode != "whatif" {
		t.Fatalf("mode = %q, want env value", cfg.Mode)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
}

func TestLogPrefix(t *testing.T) {
	if got := LogPrefix(ServiceEventlog); got != "[EVENTLOG] " {
		t.Fatalf("prefix = %q, want %q", got, "[EVENTLOG] ")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServicePlanner, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("CONFPLAN_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServicePlanner, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
