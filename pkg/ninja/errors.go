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
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingCredentials indicates the tenant has no OAuth client id/secret configured.
	ErrMissingCredentials = errors.New("missing client credentials")

	// ErrNotAuthenticated indicates the tenant has never completed the OAuth exchange
	// or has been disconnected.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpiredNoRecovery indicates the access token is expired and no refresh
	// token is stored, so recovery requires a new authorization-code exchange.
	ErrTokenExpiredNoRecovery = errors.New("access token expired and no refresh token stored")
)

// TokenExchangeError is returned when the authorization-code grant is rejected.
type TokenExchangeError struct {
	Status int
	Body   string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: status %d: %s", e.Status, e.Body)
}

// RefreshError is returned when the refresh-token grant is rejected. By the
// time the caller sees it, the credential record's tokens have been cleared
// so the engine does not loop on a permanently-invalid refresh token.
type RefreshError struct {
	Status int
	Body   string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: status %d: %s", e.Status, e.Body)
}

// APIError is any non-2xx resource API response other than a refreshable 401.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
