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

package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

const defaultPollInterval = time.Minute

// SyncRunner runs one full pass for a tenant. Engine satisfies it.
type SyncRunner interface {
	SyncAll(ctx context.Context, tenantID string) (*models.SyncSummary, error)
}

// Scheduler wakes up on a fixed cadence and runs a sync pass for every
// auto-sync tenant whose interval has elapsed. A tenant failure never stops
// the walk.
type Scheduler struct {
	runner       SyncRunner
	creds        CredentialStore
	clock        Clock
	pollInterval time.Duration
	logger       logger.Logger

	mu      stdsync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewScheduler(runner SyncRunner, creds CredentialStore, clock Clock, pollInterval time.Duration, log logger.Logger) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &Scheduler{
		runner:       runner,
		creds:        creds,
		clock:        clock,
		pollInterval: pollInterval,
		logger:       log.WithComponent("scheduler"),
	}
}

// Start launches the polling loop. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.stopped = make(chan struct{})

	go s.loop(loopCtx)

	s.logger.Info().Dur("poll_interval", s.pollInterval).Msg("scheduler started")
}

// Stop shuts the loop down and waits for the current walk to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	cancel := s.cancel
	stopped := s.stopped
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()

	select {
	case <-stopped:
	case <-ctx.Done():
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.stopped)

	ticker := s.clock.Ticker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.runDue(ctx)
		}
	}
}

// runDue walks the auto-sync tenants and syncs those whose interval elapsed.
// Tenants are independent, so each due tenant syncs in its own goroutine.
func (s *Scheduler) runDue(ctx context.Context) {
	records, err := s.creds.ListAutoSync(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list auto-sync tenants")
		return
	}

	now := s.clock.Now()

	var wg stdsync.WaitGroup

	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}

		if !s.due(rec, now) {
			continue
		}

		wg.Add(1)

		go func(rec *models.CredentialRecord) {
			defer wg.Done()

			if _, err := s.runner.SyncAll(ctx, rec.TenantID); err != nil {
				s.logger.Error().Err(err).
					Str("tenant_id", rec.TenantID).
					Msg("scheduled sync failed")
			}
		}(rec)
	}

	wg.Wait()
}

func (s *Scheduler) due(rec *models.CredentialRecord, now time.Time) bool {
	if rec.LastSyncAt == nil {
		return true
	}

	interval := time.Duration(rec.SyncInterval)
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return now.Sub(*rec.LastSyncAt) >= interval
}
