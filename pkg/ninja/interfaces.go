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

	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// HTTPClient abstracts the outbound HTTP client so transports can be wrapped
// (circuit breaker) or faked in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialStore is the subset of the persistence layer the token manager
// and authenticated client need: read a tenant's credential record and apply
// partial token updates.
type CredentialStore interface {
	Get(ctx context.Context, tenantID string) (*models.CredentialRecord, error)
	UpdateTokens(ctx context.Context, tenantID string, update *models.TokenUpdate) error
}
