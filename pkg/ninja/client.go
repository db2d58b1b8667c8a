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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

const defaultCallTimeout = 30 * time.Second

// Client issues authenticated calls against the remote resource API.
//
// The core policy is refresh-then-retry-once: a 401 triggers at most one
// refresh and one retry of the logical call, and a second 401 is conclusive
// (the credentials are bad, not stale). The retry bound is structural: the
// attempt loop runs two iterations at most and the refresh branch is only
// reachable from the first.
type Client struct {
	store   CredentialStore
	tokens  *TokenManager
	http    HTTPClient
	timeout time.Duration
	now     func() time.Time
	logger  logger.Logger
}

// NewClient wires an authenticated client. A nil now falls back to time.Now;
// a zero timeout falls back to 30s.
func NewClient(store CredentialStore, tokens *TokenManager, httpClient HTTPClient, timeout time.Duration, now func() time.Time, log logger.Logger) *Client {
	if now == nil {
		now = time.Now
	}

	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Client{
		store:   store,
		tokens:  tokens,
		http:    httpClient,
		timeout: timeout,
		now:     now,
		logger:  log,
	}
}

// Call performs one logical API call for the tenant. It returns the decoded
// response body, or nil for endpoints that return no content.
func (c *Client) Call(ctx context.Context, tenantID, method, endpoint string, body interface{}) (json.RawMessage, error) {
	cred, err := c.store.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	if !cred.HasAccessToken() {
		return nil, ErrNotAuthenticated
	}

	if c.tokens.IsExpired(cred, c.now()) {
		if !cred.HasRefreshToken() {
			return nil, ErrTokenExpiredNoRecovery
		}

		if err := c.tokens.Refresh(ctx, tenantID); err != nil {
			return nil, err
		}

		// The refreshed token must be used for this call.
		if cred, err = c.store.Get(ctx, tenantID); err != nil {
			return nil, fmt.Errorf("reload credentials: %w", err)
		}
	}

	const maxAttempts = 2

	for attempt := 0; attempt < maxAttempts; attempt++ {
		status, respBody, err := c.do(ctx, cred, method, endpoint, body)
		if err != nil {
			return nil, err
		}

		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			if len(bytes.TrimSpace(respBody)) == 0 {
				return nil, nil
			}

			return respBody, nil
		}

		if status == http.StatusUnauthorized && attempt == 0 && cred.HasRefreshToken() {
			c.logger.Debug().
				Str("tenant_id", tenantID).
				Str("endpoint", endpoint).
				Msg("Got 401, refreshing token and retrying once")

			if err := c.tokens.Refresh(ctx, tenantID); err != nil {
				return nil, err
			}

			if cred, err = c.store.Get(ctx, tenantID); err != nil {
				return nil, fmt.Errorf("reload credentials: %w", err)
			}

			continue
		}

		return nil, &APIError{Status: status, Body: string(respBody)}
	}

	// Unreachable: the second iteration always returns.
	return nil, &APIError{Status: http.StatusUnauthorized}
}

func (c *Client) do(ctx context.Context, cred *models.CredentialRecord, method, endpoint string, body interface{}) (int, []byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader = http.NoBody

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	reqURL := strings.TrimSuffix(cred.InstanceURL, "/") + endpoint

	req, err := http.NewRequestWithContext(callCtx, method, reqURL, reqBody)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Authorization", "Bearer "+*cred.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
