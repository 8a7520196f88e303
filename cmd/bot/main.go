package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"IVSentinel/internal/bot"
	"IVSentinel/internal/chart"
	"IVSentinel/internal/collector"
	"IVSentinel/internal/config"
	"IVSentinel/internal/scheduler"
	"IVSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] IVSentinel starting...")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

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

	loc, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		log.Fatalf("[FATAL] load timezone: %v", err)
	}

	// Init fetcher
	limiter := collector.NewTokenBucket(cfg.DataSource.RequestsPerSecond, cfg.DataSource.Burst)
	fetcher := collector.NewUWFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, limiter)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init chart store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init chart generator
	gen := chart.NewGenerator(fetcher, loc, cfg.Selector.Breadth,
		cfg.IntradayWindow(), cfg.Smoothing.HistoricBuckets)

	// Init Discord bot
	b, err := bot.New(cfg.Discord.BotToken, gen, st, loc)
	if err != nil {
		log.Fatalf("[FATAL] init discord bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("[FATAL] start discord bot: %v", err)
	}
	defer b.Stop()

	// Init scheduler
	sched := scheduler.NewScheduler(b)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] IVSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
