// Package eventlog parses eventlog command flags and starts the log service.
package eventlog

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/confplan/internal/platform/cmd"
	server "github.com/louisbranch/confplan/internal/services/eventlog/app"
)

// Config holds eventlog command configuration.
type Config struct {
	Addr   string `env:"CONFPLAN_EVENTLOG_ADDR" envDefault:":8090"`
	DBPath string `env:"CONFPLAN_EVENTLOG_DB_PATH" envDefault:"data/eventlog.db"`
	Seed   bool   `env:"CONFPLAN_EVENTLOG_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The eventlog listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The SQLite journal path (empty keeps the log in memory)")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Schedule a demo conference when the log is empty")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the eventlog service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEventlog, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr: cfg.Addr,
			DBPath:   cfg.DBPath,
			Seed:     cfg.Seed,
		})
	})
}
