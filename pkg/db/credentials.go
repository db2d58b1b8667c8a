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

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

const (
	getCredentialSQL = `
SELECT
	tenant_id,
	client_id,
	client_secret,
	instance_url,
	access_token,
	refresh_token,
	token_expires_at,
	auto_sync,
	sync_interval_seconds,
	last_sync_at,
	updated_at
FROM rmm_credentials
WHERE tenant_id = $1`

	saveCredentialConfigSQL = `
INSERT INTO rmm_credentials (
	tenant_id,
	client_id,
	client_secret,
	instance_url,
	auto_sync,
	sync_interval_seconds,
	updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,now()
)
ON CONFLICT (tenant_id) DO UPDATE SET
	client_id = EXCLUDED.client_id,
	client_secret = CASE WHEN EXCLUDED.client_secret = '' THEN rmm_credentials.client_secret ELSE EXCLUDED.client_secret END,
	instance_url = EXCLUDED.instance_url,
	auto_sync = EXCLUDED.auto_sync,
	sync_interval_seconds = EXCLUDED.sync_interval_seconds,
	updated_at = now()`

	updateTokensSQL = `
UPDATE rmm_credentials SET
	access_token = COALESCE($2, access_token),
	refresh_token = COALESCE($3, refresh_token),
	token_expires_at = COALESCE($4, token_expires_at),
	updated_at = now()
WHERE tenant_id = $1`

	clearTokensSQL = `
UPDATE rmm_credentials SET
	access_token = NULL,
	refresh_token = NULL,
	token_expires_at = NULL,
	updated_at = now()
WHERE tenant_id = $1`

	markSyncedSQL = `
UPDATE rmm_credentials SET
	last_sync_at = $2,
	updated_at = now()
WHERE tenant_id = $1`

	listAutoSyncSQL = `
SELECT
	tenant_id,
	client_id,
	client_secret,
	instance_url,
	access_token,
	refresh_token,
	token_expires_at,
	auto_sync,
	sync_interval_seconds,
	last_sync_at,
	updated_at
FROM rmm_credentials
WHERE auto_sync AND access_token IS NOT NULL
ORDER BY tenant_id`
)

// CredentialStore persists per-tenant OAuth client settings and token state.
type CredentialStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewCredentialStore(pool *pgxpool.Pool, log logger.Logger) *CredentialStore {
	return &CredentialStore{pool: pool, logger: log}
}

// Get returns the tenant's credential record or ErrNotFound.
func (s *CredentialStore) Get(ctx context.Context, tenantID string) (*models.CredentialRecord, error) {
	rec, err := scanCredential(s.pool.QueryRow(ctx, getCredentialSQL, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get credentials for %s: %w", tenantID, err)
	}

	return rec, nil
}

// SaveConfig upserts the tenant-editable settings. An empty client secret
// keeps the stored one so tenants can update other fields without re-entering
// it.
func (s *CredentialStore) SaveConfig(ctx context.Context, tenantID string, cfg *models.CredentialConfig) error {
	interval := int64(time.Duration(cfg.SyncInterval) / time.Second)
	if interval <= 0 {
		interval = 900
	}

	_, err := s.pool.Exec(ctx, saveCredentialConfigSQL,
		tenantID, cfg.ClientID, cfg.ClientSecret, cfg.InstanceURL, cfg.AutoSync, interval)
	if err != nil {
		return fmt.Errorf("save credential config for %s: %w", tenantID, err)
	}

	return nil
}

// UpdateTokens applies a partial token update. Nil fields keep their stored
// values; Clear nulls all three token columns.
func (s *CredentialStore) UpdateTokens(ctx context.Context, tenantID string, update *models.TokenUpdate) error {
	if update.Clear {
		tag, err := s.pool.Exec(ctx, clearTokensSQL, tenantID)
		if err != nil {
			return fmt.Errorf("clear tokens for %s: %w", tenantID, err)
		}

		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		s.logger.Info().Str("tenant_id", tenantID).Msg("cleared stored tokens")

		return nil
	}

	tag, err := s.pool.Exec(ctx, updateTokensSQL,
		tenantID, update.AccessToken, update.RefreshToken, update.TokenExpiresAt)
	if err != nil {
		return fmt.Errorf("update tokens for %s: %w", tenantID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkSynced stamps the tenant's last successful sync time.
func (s *CredentialStore) MarkSynced(ctx context.Context, tenantID string, at time.Time) error {
	if _, err := s.pool.Exec(ctx, markSyncedSQL, tenantID, at); err != nil {
		return fmt.Errorf("mark synced for %s: %w", tenantID, err)
	}

	return nil
}

// ListAutoSync returns every tenant with auto-sync enabled and a stored
// access token, for the scheduler to walk.
func (s *CredentialStore) ListAutoSync(ctx context.Context) ([]*models.CredentialRecord, error) {
	rows, err := s.pool.Query(ctx, listAutoSyncSQL)
	if err != nil {
		return nil, fmt.Errorf("list auto-sync tenants: %w", err)
	}
	defer rows.Close()

	var records []*models.CredentialRecord

	for rows.Next() {
		rec, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auto-sync tenant: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auto-sync tenants: %w", err)
	}

	return records, nil
}

func scanCredential(row pgx.Row) (*models.CredentialRecord, error) {
	var (
		rec             models.CredentialRecord
		intervalSeconds int64
	)

	if err := row.Scan(
		&rec.TenantID,
		&rec.ClientID,
		&rec.ClientSecret,
		&rec.InstanceURL,
		&rec.AccessToken,
		&rec.RefreshToken,
		&rec.TokenExpiresAt,
		&rec.AutoSync,
		&intervalSeconds,
		&rec.LastSyncAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.SyncInterval = models.Duration(time.Duration(intervalSeconds) * time.Second)

	return &rec, nil
}
