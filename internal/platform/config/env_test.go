package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	URL   string `env:"CONFPLAN_TEST_URL" envDefault:"ws://localhost:8090/ws"`
	Slots int    `env:"CONFPLAN_TEST_SLOTS" envDefault:"3"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.URL != "ws://localhost:8090/ws" {
		t.Fatalf("url = %q, want default", cfg.URL)
	}
	if cfg.Slots != 3 {
		t.Fatalf("slots = %d, want 3", cfg.Slots)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CONFPLAN_TEST_SLOTS", "many")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvFromUsesProvidedEnvironment(t *testing.T) {
	t.Setenv("CONFPLAN_TEST_SLOTS", "9")

	var cfg envTestConfig
	if err := ParseEnvFrom(&cfg, map[string]string{"CONFPLAN_TEST_SLOTS": "5"}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Slots != 5 {
		t.Fatalf("slots = %d, want 5", cfg.Slots)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatal("expected error for nil target")
	}
}
