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
	"fmt"
	"sync"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/db"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// The real credential store reports an absent row as db.ErrNotFound.
var errNoSuchTenant = fmt.Errorf("no such tenant: %w", db.ErrNotFound)

// memCredentialStore mimics the persistence layer's partial-update
// semantics: nil fields untouched, Clear wipes all token columns.
type memCredentialStore struct {
	mu      sync.Mutex
	records map[string]*models.CredentialRecord

	updateCalls int
	clearCalls  int
}

func newMemCredentialStore(records ...*models.CredentialRecord) *memCredentialStore {
	s := &memCredentialStore{records: make(map[string]*models.CredentialRecord)}
	for _, r := range records {
		s.records[r.TenantID] = r
	}

	return s
}

func (s *memCredentialStore) Get(_ context.Context, tenantID string) (*models.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[tenantID]
	if !ok {
		return nil, errNoSuchTenant
	}

	cp := *rec

	return &cp, nil
}

func (s *memCredentialStore) UpdateTokens(_ context.Context, tenantID string, update *models.TokenUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[tenantID]
	if !ok {
		return errNoSuchTenant
	}

	s.updateCalls++

	if update.Clear {
		s.clearCalls++
		rec.AccessToken = nil
		rec.RefreshToken = nil
		rec.TokenExpiresAt = nil
		rec.UpdatedAt = time.Now()

		return nil
	}

	if update.AccessToken != nil {
		rec.AccessToken = update.AccessToken
	}

	if update.RefreshToken != nil {
		rec.RefreshToken = update.RefreshToken
	}

	if update.TokenExpiresAt != nil {
		rec.TokenExpiresAt = update.TokenExpiresAt
	}

	rec.UpdatedAt = time.Now()

	return nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testCredential(tenantID, instanceURL string) *models.CredentialRecord {
	return &models.CredentialRecord{
		TenantID:     tenantID,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		InstanceURL:  instanceURL,
	}
}
