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
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestExchangeCode_PersistsTokens(t *testing.T) {
	var gotForm url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":7200}`))
	}))
	defer srv.Close()

	store := newMemCredentialStore(testCredential("acme", srv.URL))
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, logger.NewTestLogger())

	require.NoError(t, tm.ExchangeCode(context.Background(), "acme", "the-code", "https://app.example.com/callback"))

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "client-id", gotForm.Get("client_id"))
	assert.Equal(t, "client-secret", gotForm.Get("client_secret"))
	assert.Equal(t, "the-code", gotForm.Get("code"))
	assert.Equal(t, "https://app.example.com/callback", gotForm.Get("redirect_uri"))

	cred, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "at-1", *cred.AccessToken)
	assert.Equal(t, "rt-1", *cred.RefreshToken)
	assert.Equal(t, fixedNow().Add(7200*time.Second), *cred.TokenExpiresAt)
}

func TestExchangeCode_DefaultExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"at-1"}`))
	}))
	defer srv.Close()

	store := newMemCredentialStore(testCredential("acme", srv.URL))
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, logger.NewTestLogger())

	require.NoError(t, tm.ExchangeCode(context.Background(), "acme", "code", "uri"))

	cred, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, fixedNow().Add(time.Hour), *cred.TokenExpiresAt)
	assert.Nil(t, cred.RefreshToken)
}

func TestExchangeCode_MissingCredentials(t *testing.T) {
	cred := testCredential("acme", "https://rmm.example.com")
	cred.ClientSecret = ""
	store := newMemCredentialStore(cred)

	tm := NewTokenManager(store, http.DefaultClient, 0, fixedNow, logger.NewTestLogger())

	err := tm.ExchangeCode(context.Background(), "acme", "code", "uri")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestExchangeCode_NoCredentialRow(t *testing.T) {
	store := newMemCredentialStore()

	tm := NewTokenManager(store, http.DefaultClient, 0, fixedNow, logger.NewTestLogger())

	err := tm.ExchangeCode(context.Background(), "ghost", "code", "uri")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	err = tm.Refresh(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestExchangeCode_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad code", http.StatusBadRequest)
	}))
	defer srv.Close()

	store := newMemCredentialStore(testCredential("acme", srv.URL))
	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, logger.NewTestLogger())

	err := tm.ExchangeCode(context.Background(), "acme", "code", "uri")

	var exchErr *TokenExchangeError
	require.ErrorAs(t, err, &exchErr)
	assert.Equal(t, http.StatusBadRequest, exchErr.Status)

	// Nothing was persisted.
	assert.Zero(t, store.updateCalls)
}

// deadlineRecordingClient captures whether outgoing requests carry a deadline.
type deadlineRecordingClient struct {
	inner       HTTPClient
	hasDeadline bool
}

func (c *deadlineRecordingClient) Do(req *http.Request) (*http.Response, error) {
	_, c.hasDeadline = req.Context().Deadline()
	return c.inner.Do(req)
}

func TestTokenEndpointRequestsAreBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"at-1"}`))
	}))
	defer srv.Close()

	client := &deadlineRecordingClient{inner: srv.Client()}
	store := newMemCredentialStore(testCredential("acme", srv.URL))
	tm := NewTokenManager(store, client, 5*time.Second, fixedNow, logger.NewTestLogger())

	require.NoError(t, tm.ExchangeCode(context.Background(), "acme", "code", "uri"))
	assert.True(t, client.hasDeadline)
}

func TestRefresh_RejectedClearsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_grant", http.StatusBadRequest)
	}))
	defer srv.Close()

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("stale")
	cred.RefreshToken = strPtr("dead")
	cred.TokenExpiresAt = timePtr(fixedNow().Add(-time.Minute))
	store := newMemCredentialStore(cred)

	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, logger.NewTestLogger())

	err := tm.Refresh(context.Background(), "acme")

	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.Equal(t, http.StatusBadRequest, refreshErr.Status)

	got, getErr := store.Get(context.Background(), "acme")
	require.NoError(t, getErr)
	assert.Nil(t, got.AccessToken)
	assert.Nil(t, got.RefreshToken)
	assert.Nil(t, got.TokenExpiresAt)
}

func TestRefresh_PreservesUnrotatedRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "rt-keep", r.PostForm.Get("refresh_token"))

		_, _ = w.Write([]byte(`{"access_token":"at-2","expires_in":3600}`))
	}))
	defer srv.Close()

	cred := testCredential("acme", srv.URL)
	cred.AccessToken = strPtr("at-1")
	cred.RefreshToken = strPtr("rt-keep")
	store := newMemCredentialStore(cred)

	tm := NewTokenManager(store, srv.Client(), 0, fixedNow, logger.NewTestLogger())

	require.NoError(t, tm.Refresh(context.Background(), "acme"))

	got, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "at-2", *got.AccessToken)
	assert.Equal(t, "rt-keep", *got.RefreshToken)
}

func TestRefresh_NoRefreshToken(t *testing.T) {
	cred := testCredential("acme", "https://rmm.example.com")
	cred.AccessToken = strPtr("at-1")
	store := newMemCredentialStore(cred)

	tm := NewTokenManager(store, http.DefaultClient, 0, fixedNow, logger.NewTestLogger())

	err := tm.Refresh(context.Background(), "acme")
	assert.ErrorIs(t, err, ErrTokenExpiredNoRecovery)
}

func TestIsExpired(t *testing.T) {
	tm := NewTokenManager(nil, nil, 0, fixedNow, logger.NewTestLogger())
	now := fixedNow()

	noExpiry := &models.CredentialRecord{AccessToken: strPtr("at")}
	assert.False(t, tm.IsExpired(noExpiry, now))

	future := &models.CredentialRecord{AccessToken: strPtr("at"), TokenExpiresAt: timePtr(now.Add(time.Minute))}
	assert.False(t, tm.IsExpired(future, now))

	exact := &models.CredentialRecord{AccessToken: strPtr("at"), TokenExpiresAt: timePtr(now)}
	assert.True(t, tm.IsExpired(exact, now))

	past := &models.CredentialRecord{AccessToken: strPtr("at"), TokenExpiresAt: timePtr(now.Add(-time.Minute))}
	assert.True(t, tm.IsExpired(past, now))
}

func TestAuthorizeURL(t *testing.T) {
	cred := testCredential("acme", "https://rmm.example.com/")

	raw := AuthorizeURL(cred, "https://app.example.com/callback", "csrf-123")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, OAuthScopes, q.Get("scope"))
	assert.Equal(t, "csrf-123", q.Get("state"))
}

func TestDisconnect(t *testing.T) {
	cred := testCredential("acme", "https://rmm.example.com")
	cred.AccessToken = strPtr("at")
	cred.RefreshToken = strPtr("rt")
	cred.TokenExpiresAt = timePtr(fixedNow())
	store := newMemCredentialStore(cred)

	tm := NewTokenManager(store, http.DefaultClient, 0, fixedNow, logger.NewTestLogger())
	require.NoError(t, tm.Disconnect(context.Background(), "acme"))

	got, err := store.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Nil(t, got.AccessToken)
	assert.Nil(t, got.RefreshToken)
	assert.Nil(t, got.TokenExpiresAt)
}
