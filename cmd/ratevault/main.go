package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"RateVault/internal/config"
	"RateVault/internal/fetcher"
	"RateVault/internal/history"
	"RateVault/internal/recorder"
	"RateVault/internal/scheduler"
	"RateVault/internal/service"
	"RateVault/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real env wins either way.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var f fetcher.Fetcher
	if os.Getenv("PROVIDER_MOCK") == "true" {
		f = &fetcher.MockFetcher{}
	} else {
		f = fetcher.NewExchangeRateAPIFetcher(cfg.Provider.BaseURL, cfg.Proxy)
	}
	log.Printf("[INFO] rate provider: %s", f.Name())

	// Init store
	st, err := store.NewStore(
		cfg.Storage.Root,
		time.Duration(cfg.Storage.CacheTimeoutSeconds)*time.Second,
		time.Duration(cfg.Storage.CurrencyTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] init store: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	svc := service.New(st, f, rec)

	// One-shot subcommands for ad-hoc use; no arguments runs the daemon.
	if len(os.Args) > 1 {
		if err := runCommand(svc, st, os.Args[1:]); err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		return
	}

	log.Println("[INFO] RateVault starting...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, st, svc)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.SnapshotCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing favorites now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] RateVault is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] RateVault stopped")
}

func runCommand(svc *service.Service, st *store.Store, args []string) error {
	switch args[0] {
	case "convert":
		if len(args) != 4 {
			return fmt.Errorf("usage: convert BASE TARGET AMOUNT")
		}
		amount, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		result, err := svc.Convert(args[1], args[2], amount)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f %s = %.2f %s\n", amount, args[1], result, args[2])
		return nil

	case "history":
		if len(args) != 4 {
			return fmt.Errorf("usage: history BASE TARGET DAYS")
		}
		days, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("parse days: %w", err)
		}
		points, err := history.NewBuilder(st, svc).Build(args[1], args[2], days)
		if err != nil {
			return err
		}
		for _, p := range points {
			fmt.Printf("%s  %.4f\n", p.Date, p.Rate)
		}
		if stats, err := history.Summarize(points); err == nil {
			fmt.Printf("high %.4f  low %.4f  change %+.4f (%+.2f%%)\n",
				stats.High, stats.Low, stats.Change, stats.ChangePct)
		}
		return nil

	case "currencies":
		for _, code := range svc.Currencies() {
			fmt.Println(code)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q (want convert, history, or currencies)", args[0])
	}
}
