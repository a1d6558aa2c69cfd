package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"trendscraper/internal/config"
	"trendscraper/internal/core/job"
	"trendscraper/internal/core/pipeline"
	"trendscraper/internal/core/record"
	"trendscraper/internal/core/scrape"
	"trendscraper/internal/core/snapshot"
	"trendscraper/internal/health"
	"trendscraper/internal/logger"
	"trendscraper/internal/platform/cache"
	"trendscraper/internal/platform/egress"
	rds "trendscraper/internal/platform/redis"
	"trendscraper/internal/platform/tasks"
	"trendscraper/internal/server"
	"trendscraper/internal/worker"
)

func main() {
	logr := logger.New("main")
	if err := godotenv.Load(); err != nil {
		logr.LogInfof("no .env loaded: %v", err)
	}

	cfg := config.Load()
	logr.LogInfof("starting at %s (env=%s, driver=%s)", cfg.HTTPAddr, cfg.AppEnv, cfg.BrowserDriver)

	redisSvc, err := rds.New(rds.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err != nil {
		logr.LogFatalf("redis: %v", err)
	}
	defer redisSvc.Close()

	checks := map[string]health.Checker{"redis": redisSvc}
	var cacheSvc cache.CacheService
	switch cfg.CacheBackend {
	case config.CacheMemcache:
		mc := cache.NewMemcacheService(cfg.MemcacheAddr)
		checks["memcache"] = mc
		cacheSvc = mc
	default:
		cacheSvc = cache.NewRedisService(redisSvc.Client())
	}

	pipeCfg, err := scrape.PipelineConfig(cfg)
	if err != nil {
		logr.LogFatalf("pipeline config: %v", err)
	}
	opener, err := scrape.OpenerFor(cfg)
	if err != nil {
		logr.LogFatalf("page driver: %v", err)
	}

	taskClient := tasks.New(redisSvc)
	defer taskClient.Close()
	records := record.NewRedisStore(redisSvc.Client())

	deps := scrape.Dependencies{
		Open:               opener,
		Pipeline:           pipeline.New(pipeCfg, logger.New("Pipeline")),
		Resolver:           egress.NewResolver(),
		Store:              records,
		Cooldown:           cache.NewCooldown(cacheSvc, "scrape", cfg.Cooldown()),
		Jobs:               job.NewJobService(redisSvc),
		Tasks:              taskClient,
		RequireCredentials: cfg.BrowserDriver == config.DriverPlaywright,
		HasCredentials:     cfg.HasCredentials(),
		MaxRetries:         cfg.TaskMaxRetries,
	}
	if cfg.CaptureFallbackSnapshots {
		snaps, err := snapshot.New(cfg)
		if err != nil {
			logr.LogFatalf("snapshots: %v", err)
		}
		deps.Snapshots = snaps
	}
	scrapeSvc := scrape.NewService(deps)

	// One browser session at a time.
	asynqServer := asynq.NewServer(redisSvc.AsynqRedisOpt(), asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{tasks.QueueDefault: 1},
	})
	mux := worker.NewMux()
	mux.HandleFunc(tasks.TaskTypeScrape, scrapeSvc.HandleTask)
	go func() {
		if err := asynqServer.Start(mux.Mux()); err != nil {
			logr.LogErrorf("worker stopped: %v", err)
		}
	}()

	var scheduler *asynq.Scheduler
	if cfg.ScrapeCron != "" {
		scheduler = asynq.NewScheduler(redisSvc.AsynqRedisOpt(), nil)
		entryID, err := scheduler.Register(cfg.ScrapeCron, asynq.NewTask(tasks.TaskTypeScrape, nil),
			asynq.Queue(tasks.QueueDefault), asynq.MaxRetry(cfg.TaskMaxRetries))
		if err != nil {
			logr.LogFatalf("SCRAPE_CRON %q: %v", cfg.ScrapeCron, err)
		}
		if err := scheduler.Start(); err != nil {
			logr.LogFatalf("scheduler: %v", err)
		}
		logr.LogInfof("scheduled runs on %q (entry %s)", cfg.ScrapeCron, entryID)
	}

	app := fiber.New(fiber.Config{
		AppName: "Trend Scraper",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})
	// Local fallback snapshots are served from DATA_DIR.
	app.Static("/files", cfg.DataDir)

	healthHandler := server.RegisterRoutes(app, server.Dependencies{
		Scrape:       scrapeSvc,
		Records:      records,
		HealthChecks: checks,
		Production:   cfg.IsProduction(),
	})
	healthHandler.SetReady()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("shutting down")
		if scheduler != nil {
			scheduler.Shutdown()
		}
		asynqServer.Shutdown()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logr.LogFatalf("server listen: %v", err)
	}
}
