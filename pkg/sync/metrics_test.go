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

func TestInMemoryMetrics_StageCounters(t *testing.T) {
	m := NewInMemoryMetrics(logger.NewTestLogger())

	m.RecordStageAttempt("devices")
	m.RecordStageSuccess("devices", 12, 3*time.Second)
	m.RecordStageAttempt("alerts")
	m.RecordStageFailure("alerts", errors.New("boom"), time.Second)

	got := m.GetMetrics()
	stages, ok := got["stages"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, map[string]int{"devices": 1, "alerts": 1}, stages["attempts"])
	assert.Equal(t, map[string]int{"devices": 1}, stages["successes"])
	assert.Equal(t, map[string]int{"alerts": 1}, stages["failures"])
	assert.Equal(t, map[string]int{"devices": 12}, stages["items"])
}

func TestMetricsHTTPClient_RecordsOutcomes(t *testing.T) {
	var status int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	m := NewInMemoryMetrics(logger.NewTestLogger())
	client := NewMetricsHTTPClient(srv.Client(), m)

	status = http.StatusOK
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v2/devices", http.NoBody)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	status = http.StatusInternalServerError
	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/v2/devices", http.NoBody)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	got := m.GetMetrics()
	api, ok := got["api"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, map[string]int{"/api/v2/devices": 2}, api["calls"])
	assert.Equal(t, map[string]int{"/api/v2/devices": 1}, api["successes"])
	assert.Equal(t, map[string]int{"/api/v2/devices": 1}, api["failures"])
}

func TestNoOpMetrics(t *testing.T) {
	var m Metrics = &NoOpMetrics{}

	m.RecordStageAttempt("devices")
	m.RecordCircuitBreakerStateChange("rmm", StateClosed, StateOpen)

	assert.Empty(t, m.GetMetrics())
}
