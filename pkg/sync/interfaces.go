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
	"context"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/models"
	"github.com/quartzlabs/rmmbridge/pkg/ninja"
)

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/quartzlabs/rmmbridge/pkg/sync RMMClient,CredentialStore,MirrorStore,Clock,Ticker

// RMMClient is the slice of the platform client the engine consumes.
type RMMClient interface {
	ListOrganizations(ctx context.Context, tenantID string) ([]ninja.Organization, error)
	ListDevices(ctx context.Context, tenantID string, filters ninja.DeviceFilters) ([]ninja.Device, error)
	GetDeviceDetails(ctx context.Context, tenantID string, deviceID int64) (*ninja.DeviceDetail, error)
	ListAlerts(ctx context.Context, tenantID string, filters ninja.AlertFilters) ([]ninja.Alert, error)
}

// CredentialStore persists per-tenant connection settings and sync stamps.
type CredentialStore interface {
	Get(ctx context.Context, tenantID string) (*models.CredentialRecord, error)
	SaveConfig(ctx context.Context, tenantID string, cfg *models.CredentialConfig) error
	MarkSynced(ctx context.Context, tenantID string, at time.Time) error
	ListAutoSync(ctx context.Context) ([]*models.CredentialRecord, error)
}

// MirrorStore persists the local cache of remote entities.
type MirrorStore interface {
	UpsertOrganization(ctx context.Context, org *models.OrganizationMirror) (int64, error)
	UpsertDevice(ctx context.Context, dev *models.DeviceMirror) (int64, error)
	UpsertAlert(ctx context.Context, alert *models.AlertMirror) (int64, error)
	LookupOrganizationID(ctx context.Context, tenantID string, remoteOrgID int64) (*int64, error)
	LookupDeviceID(ctx context.Context, tenantID string, remoteDeviceID int64) (*int64, error)
	Counts(ctx context.Context, tenantID string) (orgs, devices int64, err error)
}

// Clock abstracts time for the scheduler so tests can drive ticks.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker is the clock's periodic signal.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
