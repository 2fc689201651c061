package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hmac213/pde-pricer/config"
	"github.com/hmac213/pde-pricer/internal/api"
	"github.com/hmac213/pde-pricer/pkg/cache"
	"github.com/hmac213/pde-pricer/pkg/logger"
	"github.com/hmac213/pde-pricer/pkg/marketdata"
	"github.com/hmac213/pde-pricer/pkg/metrics"
	"github.com/hmac213/pde-pricer/pkg/pricer"
	"github.com/hmac213/pde-pricer/pkg/queue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	logger.ConsoleLog("INFO", "PDE Option Pricer v1.0")

	cfg := config.Load()

	lg, err := logger.New(logger.Config{
		FilePath:   cfg.LogFilePath,
		Level:      cfg.LogLevel,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	lg = lg.With(slog.String(logger.KeyComponent, "pricer"))

	resultCache := cache.New()
	for _, t := range cfg.Tickers {
		resultCache.Add(t)
	}

	breaker := queue.NewCircuitBreaker(cfg.CircuitFailureThreshold, cfg.CircuitMinSamples, cfg.CircuitResetWindow)

	processor := &queue.Processor{
		Workers: cfg.Workers,
		Logger:  lg,
		Metrics: metrics.Prometheus{},
		Breaker: breaker,
	}

	jobQueue := queue.NewJobQueue()

	poller := newFixturePoller(cfg.DefaultRiskFreeRate, cfg.DefaultDividendYield)

	pollLoop := &marketdata.PollLoop{
		Interval:  cfg.PollInterval,
		Tickers:   cfg.Tickers,
		Poller:    poller,
		Queue:     jobQueue,
		Processor: processor,
		Solve:     pricer.Solve,
		Callback:  resultCache.Set,
		Logger:    lg,
	}
	pollLoop.Start()

	server := api.NewServer(resultCache, resultCache, lg)
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: server}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("http server stopped", "error", err)
		}
	}()
	lg.Info("pricer started", "http_addr", cfg.HTTPAddr, "tickers", cfg.Tickers)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	lg.Info("shutting down")
	pollLoop.Stop()
	_ = httpServer.Close()
}
