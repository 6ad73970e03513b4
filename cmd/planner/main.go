package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	plannercmd "github.com/louisbranch/confplan/internal/cmd/planner"
	entrypoint "github.com/louisbranch/confplan/internal/platform/cmd"
	"github.com/louisbranch/confplan/internal/platform/config"
)

func main() {
	cfg, err := plannercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServicePlanner))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := plannercmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("planner: %v", err)
	}
}
