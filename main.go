package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"screentime/config"
	"screentime/entity"
	"screentime/launch"
	"screentime/report"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath(), "config file path")
		detailed   = flag.Bool("detailed", false, "list apps under each category")
		verbose    = flag.Bool("v", false, "log progress to stderr")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "screentime: ", log.LstdFlags)
	}

	p, err := launch.NewPipeline(cfg, logger)
	if err != nil {
		if errors.Is(err, entity.ErrSourceUnavailable) {
			report.WriteSourceUnavailable(os.Stdout, err)
		} else {
			report.WriteFailure(os.Stdout, err)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := launch.Execute(ctx, p, os.Stdout, report.Options{
		BookHours: cfg.General.BookHours,
		Detailed:  cfg.General.Detailed || *detailed,
	})
	stop()
	os.Exit(code)
}
