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
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
)

// CircuitBreakerState is the breaker's position.
type CircuitBreakerState int

const (
	// StateClosed allows requests through.
	StateClosed CircuitBreakerState = iota
	// StateOpen rejects requests.
	StateOpen
	// StateHalfOpen lets probes through to test recovery.
	StateHalfOpen
)

// CircuitBreakerConfig tunes the breaker thresholds.
type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
	ResetTimeout     time.Duration
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		ResetTimeout:     60 * time.Second,
	}
}

// CircuitBreaker guards the remote platform from hammering while it is down.
type CircuitBreaker struct {
	config        CircuitBreakerConfig
	state         CircuitBreakerState
	failureCount  int
	successCount  int
	lastFailTime  time.Time
	lastResetTime time.Time
	mu            sync.RWMutex
	metrics       Metrics
	logger        logger.Logger
	name          string
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig, metrics Metrics, log logger.Logger) *CircuitBreaker {
	if metrics == nil {
		metrics = &NoOpMetrics{}
	}

	return &CircuitBreaker{
		config:        config,
		state:         StateClosed,
		lastResetTime: time.Now(),
		metrics:       metrics,
		logger:        log,
		name:          name,
	}
}

// Execute runs fn through the breaker.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		return fmt.Errorf("circuit breaker %s is open", cb.name)
	}

	err := fn()
	cb.recordResult(err)

	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()

	switch cb.state {
	case StateClosed:
		if now.Sub(cb.lastResetTime) >= cb.config.ResetTimeout {
			cb.failureCount = 0
			cb.lastResetTime = now
		}

		return true

	case StateOpen:
		if now.Sub(cb.lastFailTime) >= cb.config.Timeout {
			cb.transition(StateHalfOpen)
			cb.successCount = 0

			return true
		}

		return false

	case StateHalfOpen:
		return true

	default:
		return false
	}
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
}

func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailTime = time.Now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.transition(StateOpen)
			cb.logger.Warn().
				Str("circuit_breaker", cb.name).
				Int("failure_count", cb.failureCount).
				Msg("circuit breaker opened")
		}

	case StateHalfOpen:
		cb.transition(StateOpen)
		cb.logger.Warn().
			Str("circuit_breaker", cb.name).
			Msg("circuit breaker reopened after failed half-open probe")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.config.SuccessThreshold {
			cb.transition(StateClosed)
			cb.failureCount = 0
			cb.lastResetTime = time.Now()
			cb.logger.Info().
				Str("circuit_breaker", cb.name).
				Msg("circuit breaker closed after recovery")
		}

	case StateClosed:
		cb.failureCount = 0
		cb.lastResetTime = time.Now()
	}
}

// transition changes state and records it. Caller holds the lock.
func (cb *CircuitBreaker) transition(to CircuitBreakerState) {
	from := cb.state
	cb.state = to
	cb.metrics.RecordCircuitBreakerStateChange(cb.name, from, to)
}

// GetState returns the breaker's current position.
func (cb *CircuitBreaker) GetState() CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerHTTPClient wraps an HTTP client with breaker protection.
// 5xx responses and transport errors count as failures; 4xx responses do not,
// since they describe the request, not the platform's health.
type CircuitBreakerHTTPClient struct {
	client  ninjaHTTPClient
	breaker *CircuitBreaker
}

func NewCircuitBreakerHTTPClient(client ninjaHTTPClient, name string, config CircuitBreakerConfig, metrics Metrics, log logger.Logger) *CircuitBreakerHTTPClient {
	return &CircuitBreakerHTTPClient{
		client:  client,
		breaker: NewCircuitBreaker(name, config, metrics, log),
	}
}

func (c *CircuitBreakerHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var (
		resp *http.Response
		err  error
	)

	execErr := c.breaker.Execute(func() error {
		resp, err = c.client.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}

		return nil
	})

	if execErr != nil && err == nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, execErr
	}

	return resp, err
}

// Breaker exposes the underlying breaker for status reporting.
func (c *CircuitBreakerHTTPClient) Breaker() *CircuitBreaker {
	return c.breaker
}
