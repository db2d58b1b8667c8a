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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/db"
	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

const (
	// OAuthScopes is the scope set requested during authorization.
	// offline_access is what makes the provider return a refresh token.
	OAuthScopes = "monitoring management control offline_access"

	defaultExpiresIn    = 3600 * time.Second
	defaultTokenTimeout = 30 * time.Second
)

// TokenManager obtains and refreshes OAuth access tokens for tenants,
// persisting token state through the credential store.
type TokenManager struct {
	store   CredentialStore
	client  HTTPClient
	timeout time.Duration
	now     func() time.Time
	logger  logger.Logger
}

// NewTokenManager wires a token manager with its dependencies. A nil now
// falls back to time.Now; a zero timeout falls back to 30s.
func NewTokenManager(store CredentialStore, client HTTPClient, timeout time.Duration, now func() time.Time, log logger.Logger) *TokenManager {
	if now == nil {
		now = time.Now
	}

	if timeout <= 0 {
		timeout = defaultTokenTimeout
	}

	return &TokenManager{
		store:   store,
		client:  client,
		timeout: timeout,
		now:     now,
		logger:  log,
	}
}

// loadCredentials fetches the tenant's credential row. An absent row means
// the tenant was never configured, which is ErrMissingCredentials.
func (m *TokenManager) loadCredentials(ctx context.Context, tenantID string) (*models.CredentialRecord, error) {
	cred, err := m.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrMissingCredentials
		}

		return nil, fmt.Errorf("load credentials: %w", err)
	}

	return cred, nil
}

// AuthorizeURL builds the provider's authorization URL for the tenant.
// state is an opaque caller-defined CSRF token; it is not interpreted here.
func AuthorizeURL(cred *models.CredentialRecord, redirectURI, state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", cred.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", OAuthScopes)
	q.Set("state", state)

	return strings.TrimSuffix(cred.InstanceURL, "/") + "/oauth/authorize?" + q.Encode()
}

// ExchangeCode redeems an authorization code for tokens and persists them.
func (m *TokenManager) ExchangeCode(ctx context.Context, tenantID, code, redirectURI string) error {
	cred, err := m.loadCredentials(ctx, tenantID)
	if err != nil {
		return err
	}

	if cred.ClientID == "" || cred.ClientSecret == "" {
		return ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", cred.ClientID)
	form.Set("client_secret", cred.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	token, status, body, err := m.postTokenEndpoint(ctx, cred, form)
	if err != nil {
		return err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return &TokenExchangeError{Status: status, Body: body}
	}

	update := m.tokenUpdate(token)

	if err := m.store.UpdateTokens(ctx, tenantID, update); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}

	m.logger.Info().
		Str("tenant_id", tenantID).
		Bool("refresh_token", token.RefreshToken != "").
		Time("expires_at", *update.TokenExpiresAt).
		Msg("Completed authorization code exchange")

	return nil
}

// Refresh redeems the stored refresh token for a new access token. A non-2xx
// response clears all token state before returning: a rejected refresh token
// is permanent, and keeping it would send every later call into the same
// failing exchange.
func (m *TokenManager) Refresh(ctx context.Context, tenantID string) error {
	cred, err := m.loadCredentials(ctx, tenantID)
	if err != nil {
		return err
	}

	if cred.ClientID == "" || cred.ClientSecret == "" {
		return ErrMissingCredentials
	}

	if !cred.HasRefreshToken() {
		return ErrTokenExpiredNoRecovery
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", cred.ClientID)
	form.Set("client_secret", cred.ClientSecret)
	form.Set("refresh_token", *cred.RefreshToken)

	token, status, body, err := m.postTokenEndpoint(ctx, cred, form)
	if err != nil {
		return err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if clearErr := m.store.UpdateTokens(ctx, tenantID, &models.TokenUpdate{Clear: true}); clearErr != nil {
			m.logger.Error().Err(clearErr).
				Str("tenant_id", tenantID).
				Msg("Failed to clear tokens after rejected refresh")
		}

		m.logger.Warn().
			Str("tenant_id", tenantID).
			Int("status", status).
			Msg("Refresh token rejected; cleared stored tokens")

		return &RefreshError{Status: status, Body: body}
	}

	update := m.tokenUpdate(token)
	if token.RefreshToken == "" {
		// Provider did not rotate; keep the stored refresh token.
		update.RefreshToken = nil
	}

	if err := m.store.UpdateTokens(ctx, tenantID, update); err != nil {
		return fmt.Errorf("persist refreshed tokens: %w", err)
	}

	m.logger.Debug().
		Str("tenant_id", tenantID).
		Bool("rotated_refresh_token", token.RefreshToken != "").
		Msg("Refreshed access token")

	return nil
}

// IsExpired reports whether the stored access token is past its expiry.
// A token without an expiry is trusted until a 401 proves otherwise.
func (*TokenManager) IsExpired(cred *models.CredentialRecord, now time.Time) bool {
	if cred.TokenExpiresAt == nil {
		return false
	}

	return !now.Before(*cred.TokenExpiresAt)
}

// Disconnect clears all token state for the tenant.
func (m *TokenManager) Disconnect(ctx context.Context, tenantID string) error {
	if err := m.store.UpdateTokens(ctx, tenantID, &models.TokenUpdate{Clear: true}); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}

	m.logger.Info().Str("tenant_id", tenantID).Msg("Disconnected tenant from RMM")

	return nil
}

func (m *TokenManager) postTokenEndpoint(
	ctx context.Context, cred *models.CredentialRecord, form url.Values) (token tokenResponse, status int, body string, err error) {
	endpoint := strings.TrimSuffix(cred.InstanceURL, "/") + "/oauth/token"

	// Token calls are bounded like resource calls; a hung token endpoint
	// must not stall a sync pass.
	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, 0, "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return tokenResponse{}, 0, "", fmt.Errorf("token endpoint request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return tokenResponse{}, 0, "", fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.Unmarshal(bodyBytes, &token); err != nil {
			return tokenResponse{}, 0, "", fmt.Errorf("parse token response: %w", err)
		}
	}

	return token, resp.StatusCode, string(bodyBytes), nil
}

func (m *TokenManager) tokenUpdate(token tokenResponse) *models.TokenUpdate {
	expiresIn := defaultExpiresIn
	if token.ExpiresIn > 0 {
		expiresIn = time.Duration(token.ExpiresIn) * time.Second
	}

	expiresAt := m.now().Add(expiresIn).UTC()

	update := &models.TokenUpdate{
		AccessToken:    &token.AccessToken,
		TokenExpiresAt: &expiresAt,
	}

	if token.RefreshToken != "" {
		update.RefreshToken = &token.RefreshToken
	}

	return update
}
