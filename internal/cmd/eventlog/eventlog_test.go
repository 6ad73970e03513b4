package eventlog

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("eventlog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":8090" {
		t.Fatalf("expected default addr :8090, got %q", cfg.Addr)
	}
	if cfg.DBPath != "data/eventlog.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Seed {
		t.Fatal("expected seeding off by default")
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("CONFPLAN_EVENTLOG_ADDR", "127.0.0.1:7000")
	t.Setenv("CONFPLAN_EVENTLOG_SEED", "true")
	fs := flag.NewFlagSet("eventlog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" || !cfg.Seed {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CONFPLAN_EVENTLOG_ADDR", "127.0.0.1:7000")
	fs := flag.NewFlagSet("eventlog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", ":9999", "-db-path", "", "-seed"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("expected flag to override env, got %q", cfg.Addr)
	}
	if cfg.DBPath != "" || !cfg.Seed {
		t.Fatalf("expected flag overrides, got %+v", cfg)
	}
}
