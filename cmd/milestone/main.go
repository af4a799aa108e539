package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"milestone/internal/api"
	"milestone/internal/config"
	"milestone/internal/export"
	applog "milestone/internal/log"
	"milestone/internal/ui"
)

type flagConfig struct {
	configPath string
	baseURL    string
	exportPath string
	debug      bool
}

func main() {
	flags := parseFlags()

	cfg, err := config.LoadOrCreate(flags.configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	if flags.baseURL != "" {
		cfg.BaseURL = flags.baseURL
		cfg.Normalize()
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}

	logger, closer, err := applog.Open(cfg.LogFile, applog.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Prefix:    config.AppName,
		Timestamp: true,
	})
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	logger.Info("milestone starting", "config_path", flags.configPath, "base_url", cfg.BaseURL)

	client, err := api.New(cfg.BaseURL, nil, logger)
	if err != nil {
		fmt.Printf("invalid server address: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.exportPath != "" {
		if err := exportTasks(ctx, client, flags.exportPath); err != nil {
			logger.Error("export failed", "err", err)
			fmt.Printf("export failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err = ui.Run(ctx, cfg, ui.Deps{Service: client, Logger: logger})
	if err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("milestone exiting")
}

// exportTasks writes the current snapshot as iCalendar to path, or to
// stdout when path is "-".
func exportTasks(ctx context.Context, svc api.Service, path string) error {
	tasks, err := svc.Tasks(ctx)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.WriteICS(w, tasks, time.Now())
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", config.ResolveConfigPath(), "Path to config file (.toml, .yaml or .yml)")
	flag.StringVar(&cfg.baseURL, "base-url", "", "Server address (overrides config if set)")
	flag.StringVar(&cfg.exportPath, "export", "", "Write tasks as an iCalendar file and exit (\"-\" for stdout)")
	flag.BoolVar(&cfg.debug, "debug", false, "Log at debug level")

	flag.Parse()

	return cfg
}
