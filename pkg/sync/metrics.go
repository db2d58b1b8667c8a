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
	"net/http"
	"sync"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
)

// Metrics collects sync engine counters.
type Metrics interface {
	RecordStageAttempt(stage string)
	RecordStageSuccess(stage string, itemCount int, duration time.Duration)
	RecordStageFailure(stage string, err error, duration time.Duration)

	RecordAPICall(endpoint string)
	RecordAPISuccess(endpoint string, duration time.Duration)
	RecordAPIFailure(endpoint string, statusCode int, duration time.Duration)

	RecordCircuitBreakerStateChange(name string, oldState, newState CircuitBreakerState)

	GetMetrics() map[string]interface{}
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (*NoOpMetrics) RecordStageAttempt(string)                                 {}
func (*NoOpMetrics) RecordStageSuccess(string, int, time.Duration)             {}
func (*NoOpMetrics) RecordStageFailure(string, error, time.Duration)           {}
func (*NoOpMetrics) RecordAPICall(string)                                      {}
func (*NoOpMetrics) RecordAPISuccess(string, time.Duration)                    {}
func (*NoOpMetrics) RecordAPIFailure(string, int, time.Duration)               {}
func (*NoOpMetrics) RecordCircuitBreakerStateChange(string, CircuitBreakerState, CircuitBreakerState) {
}
func (*NoOpMetrics) GetMetrics() map[string]interface{} { return map[string]interface{}{} }

// InMemoryMetrics keeps counters in process memory for GetMetrics snapshots.
type InMemoryMetrics struct {
	mu     sync.RWMutex
	logger logger.Logger

	stageAttempts  map[string]int
	stageSuccesses map[string]int
	stageFailures  map[string]int
	stageDurations map[string]time.Duration
	stageItems     map[string]int

	apiCalls     map[string]int
	apiSuccesses map[string]int
	apiFailures  map[string]int
	apiDurations map[string]time.Duration

	breakerStates map[string]string

	lastUpdated time.Time
}

func NewInMemoryMetrics(log logger.Logger) *InMemoryMetrics {
	return &InMemoryMetrics{
		logger:         log,
		stageAttempts:  make(map[string]int),
		stageSuccesses: make(map[string]int),
		stageFailures:  make(map[string]int),
		stageDurations: make(map[string]time.Duration),
		stageItems:     make(map[string]int),
		apiCalls:       make(map[string]int),
		apiSuccesses:   make(map[string]int),
		apiFailures:    make(map[string]int),
		apiDurations:   make(map[string]time.Duration),
		breakerStates:  make(map[string]string),
		lastUpdated:    time.Now(),
	}
}

func (m *InMemoryMetrics) RecordStageAttempt(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageAttempts[stage]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordStageSuccess(stage string, itemCount int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageSuccesses[stage]++
	m.stageItems[stage] = itemCount
	m.stageDurations[stage] = duration
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordStageFailure(stage string, err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageFailures[stage]++
	m.stageDurations[stage] = duration
	m.lastUpdated = time.Now()

	m.logger.Error().
		Str("stage", stage).
		Err(err).
		Dur("duration", duration).
		Msg("sync stage failed")
}

func (m *InMemoryMetrics) RecordAPICall(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCalls[endpoint]++
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordAPISuccess(endpoint string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiSuccesses[endpoint]++
	m.apiDurations[endpoint] = duration
	m.lastUpdated = time.Now()
}

func (m *InMemoryMetrics) RecordAPIFailure(endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiFailures[endpoint]++
	m.apiDurations[endpoint] = duration
	m.lastUpdated = time.Now()

	m.logger.Warn().
		Str("endpoint", endpoint).
		Int("status_code", statusCode).
		Dur("duration", duration).
		Msg("API call failed")
}

func (m *InMemoryMetrics) RecordCircuitBreakerStateChange(name string, oldState, newState CircuitBreakerState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breakerStates[name] = newState.String()
	m.lastUpdated = time.Now()

	m.logger.Info().
		Str("circuit_breaker", name).
		Str("old_state", oldState.String()).
		Str("new_state", newState.String()).
		Msg("circuit breaker state changed")
}

func (m *InMemoryMetrics) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"stages": map[string]interface{}{
			"attempts":  m.stageAttempts,
			"successes": m.stageSuccesses,
			"failures":  m.stageFailures,
			"durations": m.stageDurations,
			"items":     m.stageItems,
		},
		"api": map[string]interface{}{
			"calls":     m.apiCalls,
			"successes": m.apiSuccesses,
			"failures":  m.apiFailures,
			"durations": m.apiDurations,
		},
		"circuit_breakers": m.breakerStates,
		"last_updated":     m.lastUpdated,
	}
}

// MetricsHTTPClient wraps an HTTP client to record per-endpoint counters.
type MetricsHTTPClient struct {
	client  ninjaHTTPClient
	metrics Metrics
}

type ninjaHTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewMetricsHTTPClient(client ninjaHTTPClient, metrics Metrics) *MetricsHTTPClient {
	return &MetricsHTTPClient{client: client, metrics: metrics}
}

func (m *MetricsHTTPClient) Do(req *http.Request) (*http.Response, error) {
	endpoint := req.URL.Path
	if endpoint == "" {
		endpoint = req.URL.String()
	}

	start := time.Now()
	m.metrics.RecordAPICall(endpoint)

	resp, err := m.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		m.metrics.RecordAPIFailure(endpoint, 0, duration)
		return resp, err
	}

	if resp.StatusCode >= 400 {
		m.metrics.RecordAPIFailure(endpoint, resp.StatusCode, duration)
	} else {
		m.metrics.RecordAPISuccess(endpoint, duration)
	}

	return resp, err
}
