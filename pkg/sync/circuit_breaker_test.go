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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
)

var errRemote = errors.New("remote down")

func testBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          20 * time.Millisecond,
		ResetTimeout:     time.Minute,
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", testBreakerConfig(), nil, logger.NewTestLogger())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRemote })
	}

	assert.Equal(t, StateOpen, cb.GetState())

	err := cb.Execute(func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is open")
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", testBreakerConfig(), nil, logger.NewTestLogger())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRemote })
	}

	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(25 * time.Millisecond)

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateHalfOpen, cb.GetState())

	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("test", testBreakerConfig(), nil, logger.NewTestLogger())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errRemote })
	}

	time.Sleep(25 * time.Millisecond)

	_ = cb.Execute(func() error { return errRemote })
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreakerHTTPClient_ServerErrorsTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewCircuitBreakerHTTPClient(srv.Client(), "rmm", testBreakerConfig(), nil, logger.NewTestLogger())

	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
		require.NoError(t, err)
		_, _ = client.Do(req)
	}

	assert.Equal(t, StateOpen, client.Breaker().GetState())
}

func TestCircuitBreakerHTTPClient_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewCircuitBreakerHTTPClient(srv.Client(), "rmm", testBreakerConfig(), nil, logger.NewTestLogger())

	for i := 0; i < 5; i++ {
		req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NotNil(t, resp)
		_ = resp.Body.Close()
	}

	assert.Equal(t, StateClosed, client.Breaker().GetState())
}

func TestCircuitBreakerStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitBreakerState(99).String())
}
