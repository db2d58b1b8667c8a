/*
 * Copyright 2026 Quartz Labs, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/config"
	"github.com/quartzlabs/rmmbridge/pkg/db"
	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/ninja"
	"github.com/quartzlabs/rmmbridge/pkg/sync"
)

var configFile = flag.String("config", "", "Path to config file (defaults to the standard search paths)")

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Debug:  cfg.Logging.Debug,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal().Err(err).Msg("rmmbridge failed")
	}
}

func loadConfig() (*config.Config, error) {
	if *configFile != "" {
		return config.LoadFile(*configFile)
	}

	return config.Load()
}

func run(cfg *config.Config, zlog logger.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan

		zlog.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		cancel()
	}()

	zlog.Info().Msg("Starting rmmbridge")

	pool, err := db.NewPool(ctx, &cfg.Database, zlog)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, zlog); err != nil {
		return err
	}

	credStore := db.NewCredentialStore(pool, zlog)
	mirrorStore := db.NewMirrorStore(pool, zlog)

	metrics := sync.NewInMemoryMetrics(zlog)

	var httpClient ninja.HTTPClient = sync.NewMetricsHTTPClient(&http.Client{}, metrics)

	if cfg.RMM.CircuitBreaker.Enabled {
		httpClient = sync.NewCircuitBreakerHTTPClient(httpClient, "rmm", sync.CircuitBreakerConfig{
			FailureThreshold: cfg.RMM.CircuitBreaker.FailureThreshold,
			SuccessThreshold: cfg.RMM.CircuitBreaker.SuccessThreshold,
			Timeout:          cfg.RMM.CircuitBreaker.Timeout,
			ResetTimeout:     cfg.RMM.CircuitBreaker.ResetTimeout,
		}, metrics, zlog)
	}

	tokens := ninja.NewTokenManager(credStore, httpClient, cfg.RMM.HTTPTimeout, time.Now, zlog)
	client := ninja.NewClient(credStore, tokens, httpClient, cfg.RMM.HTTPTimeout, time.Now, zlog)

	clock := sync.NewClock()
	engine := sync.NewEngine(credStore, mirrorStore, client, clock, metrics, zlog)

	scheduler := sync.NewScheduler(engine, credStore, clock, cfg.Sync.PollInterval, zlog)
	scheduler.Start(ctx)

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	scheduler.Stop(stopCtx)
	zlog.Info().Msg("rmmbridge stopped")

	return nil
}
