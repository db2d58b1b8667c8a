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

package models

import "time"

// CredentialRecord holds one tenant's OAuth client configuration and the
// current token state. Tokens are nulled on disconnect and on irrecoverable
// refresh failure; if AccessToken is set, TokenExpiresAt is set alongside it
// by every writer.
type CredentialRecord struct {
	TenantID       string     `json:"tenant_id"`
	ClientID       string     `json:"client_id"`
	ClientSecret   string     `json:"-"`
	InstanceURL    string     `json:"instance_url"`
	AccessToken    *string    `json:"-"`
	RefreshToken   *string    `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	AutoSync       bool       `json:"auto_sync"`
	SyncInterval   Duration   `json:"sync_interval"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasAccessToken reports whether a non-empty access token is stored.
func (c *CredentialRecord) HasAccessToken() bool {
	return c.AccessToken != nil && *c.AccessToken != ""
}

// HasRefreshToken reports whether post-expiry recovery is possible.
func (c *CredentialRecord) HasRefreshToken() bool {
	return c.RefreshToken != nil && *c.RefreshToken != ""
}

// TokenUpdate is the partial-update payload written after an OAuth grant.
// Nil fields are left untouched by the store; Clear wipes all three token
// columns regardless.
type TokenUpdate struct {
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
	Clear          bool
}

// CredentialConfig is the tenant-editable subset of the credential record.
type CredentialConfig struct {
	ClientID     string   `json:"client_id" validate:"required"`
	ClientSecret string   `json:"client_secret,omitempty"`
	InstanceURL  string   `json:"instance_url" validate:"required,url"`
	AutoSync     bool     `json:"auto_sync"`
	SyncInterval Duration `json:"sync_interval"`
}
