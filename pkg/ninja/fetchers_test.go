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

package ninja

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// routeClient builds an authenticated client against a server that serves the
// given path -> JSON body map. Unknown paths get a 404.
func routeClient(t *testing.T, routes map[string]string) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("at")
	store := newMemCredentialStore(cred)

	log := logger.NewTestLogger()
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, log)

	return NewClient(store, tm, srv.Client(), 5*time.Second, fixedNow, log), srv
}

func TestListOrganizations(t *testing.T) {
	client, _ := routeClient(t, map[string]string{
		"/api/v2/organizations": `[
			{"id":1,"name":"HQ","description":"main office"},
			{"id":2,"name":"Branch"}
		]`,
	})

	orgs, err := client.ListOrganizations(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, orgs, 2)

	assert.Equal(t, int64(1), orgs[0].ID)
	assert.Equal(t, "HQ", orgs[0].Name)
	require.NotNil(t, orgs[0].Description)
	assert.Equal(t, "main office", *orgs[0].Description)
	assert.Nil(t, orgs[1].Description)
}

func TestListOrganizations_EmptyBody(t *testing.T) {
	client, _ := routeClient(t, map[string]string{
		"/api/v2/organizations": ``,
	})

	orgs, err := client.ListOrganizations(context.Background(), "acme")
	require.NoError(t, err)
	assert.NotNil(t, orgs)
	assert.Empty(t, orgs)
}

func TestListDevices_Filters(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":42,"organizationId":1,"nodeClass":"WINDOWS_SERVER","offline":false,"systemName":"srv-01","lastContact":"1700000000"}]`))
	}))
	defer srv.Close()

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("at")
	store := newMemCredentialStore(cred)
	log := logger.NewTestLogger()
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, log)
	client := NewClient(store, tm, srv.Client(), 5*time.Second, fixedNow, log)

	orgID := int64(1)
	offline := false

	devices, err := client.ListDevices(context.Background(), "acme", DeviceFilters{
		OrgID:     &orgID,
		NodeClass: models.NodeClassWindowsServer,
		Offline:   &offline,
	})
	require.NoError(t, err)
	require.Len(t, devices, 1)

	assert.Contains(t, gotQuery, "org=1")
	assert.Contains(t, gotQuery, "class=WINDOWS_SERVER")
	assert.Contains(t, gotQuery, "offline=false")

	dev := devices[0]
	assert.Equal(t, int64(42), dev.ID)
	assert.Equal(t, models.NodeClassWindowsServer, dev.NodeClass)

	lastContact := ParseRemoteTime(dev.LastContact)
	require.NotNil(t, lastContact)
	assert.Equal(t, int64(1700000000000), lastContact.UnixMilli())
}

func TestListAlerts_SinceFilter(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("at")
	store := newMemCredentialStore(cred)
	log := logger.NewTestLogger()
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, log)
	client := NewClient(store, tm, srv.Client(), 5*time.Second, fixedNow, log)

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	alerts, err := client.ListAlerts(context.Background(), "acme", AlertFilters{
		Severity: models.SeverityCritical,
		Since:    &since,
	})
	require.NoError(t, err)
	assert.Empty(t, alerts)

	assert.Contains(t, gotQuery, "severity=CRITICAL")
	assert.Contains(t, gotQuery, "2026-02-01T00%3A00%3A00Z")
}

func TestGetAlert(t *testing.T) {
	client, _ := routeClient(t, map[string]string{
		"/api/v2/alert/uid-1": `{"uid":"uid-1","deviceId":42,"severity":"MAJOR","message":"disk full","createTime":1700000000}`,
	})

	alert, err := client.GetAlert(context.Background(), "acme", "uid-1")
	require.NoError(t, err)
	require.NotNil(t, alert)

	assert.Equal(t, "uid-1", alert.UID)
	assert.Equal(t, int64(42), alert.DeviceID)
	assert.Equal(t, "MAJOR", alert.Severity)
	require.NotNil(t, ParseRemoteTime(alert.CreateTime))
}

func TestGetAlert_NotFound(t *testing.T) {
	client, _ := routeClient(t, map[string]string{})

	_, err := client.GetAlert(context.Background(), "acme", "gone")
	assert.True(t, IsNotFound(err))
}

func TestResetAlert(t *testing.T) {
	var gotMethod, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("at")
	store := newMemCredentialStore(cred)
	log := logger.NewTestLogger()
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, log)
	client := NewClient(store, tm, srv.Client(), 5*time.Second, fixedNow, log)

	require.NoError(t, client.ResetAlert(context.Background(), "acme", "uid-9"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v2/alert/uid-9/reset", gotPath)
}
