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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// Upserts are keyed on the natural remote key, never the local serial id.
// Local-only columns (customer_id on organizations, resolved and ticket_id on
// alerts) are deliberately absent from the DO UPDATE lists so a re-sync never
// clobbers them.
const (
	upsertOrganizationSQL = `
INSERT INTO rmm_organizations (
	tenant_id,
	remote_org_id,
	name,
	description,
	user_data,
	synced_at
) VALUES (
	$1,$2,$3,$4,$5,$6
)
ON CONFLICT (tenant_id, remote_org_id) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	user_data = EXCLUDED.user_data,
	synced_at = EXCLUDED.synced_at
RETURNING id`

	upsertDeviceSQL = `
INSERT INTO rmm_devices (
	tenant_id,
	remote_device_id,
	remote_org_id,
	organization_id,
	node_class,
	offline,
	system_name,
	display_name,
	last_contact,
	detail,
	synced_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
ON CONFLICT (tenant_id, remote_device_id) DO UPDATE SET
	remote_org_id = EXCLUDED.remote_org_id,
	organization_id = EXCLUDED.organization_id,
	node_class = EXCLUDED.node_class,
	offline = EXCLUDED.offline,
	system_name = EXCLUDED.system_name,
	display_name = EXCLUDED.display_name,
	last_contact = EXCLUDED.last_contact,
	detail = COALESCE(EXCLUDED.detail, rmm_devices.detail),
	synced_at = EXCLUDED.synced_at
RETURNING id`

	upsertAlertSQL = `
INSERT INTO rmm_alerts (
	tenant_id,
	remote_alert_uid,
	remote_device_id,
	device_id,
	severity,
	priority,
	message,
	source_type,
	data,
	remote_created_at,
	remote_activity_at,
	synced_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
)
ON CONFLICT (tenant_id, remote_alert_uid) DO UPDATE SET
	remote_device_id = EXCLUDED.remote_device_id,
	device_id = EXCLUDED.device_id,
	severity = EXCLUDED.severity,
	priority = EXCLUDED.priority,
	message = EXCLUDED.message,
	source_type = EXCLUDED.source_type,
	data = EXCLUDED.data,
	remote_created_at = EXCLUDED.remote_created_at,
	remote_activity_at = EXCLUDED.remote_activity_at,
	synced_at = EXCLUDED.synced_at
RETURNING id`

	lookupOrganizationIDSQL = `
SELECT id FROM rmm_organizations
WHERE tenant_id = $1 AND remote_org_id = $2`

	lookupDeviceIDSQL = `
SELECT id FROM rmm_devices
WHERE tenant_id = $1 AND remote_device_id = $2`

	countOrganizationsSQL = `
SELECT count(*) FROM rmm_organizations WHERE tenant_id = $1`

	countDevicesSQL = `
SELECT count(*) FROM rmm_devices WHERE tenant_id = $1`

	alertContextSQL = `
SELECT
	a.id, a.tenant_id, a.remote_alert_uid, a.remote_device_id, a.device_id,
	a.severity, COALESCE(a.priority, ''), a.message, a.source_type, a.data,
	a.remote_created_at, a.remote_activity_at, a.resolved, a.ticket_id, a.synced_at,
	d.id, d.remote_device_id, d.remote_org_id, d.node_class, d.offline,
	d.system_name, d.display_name,
	o.id, o.remote_org_id, o.name, o.customer_id
FROM rmm_alerts a
LEFT JOIN rmm_devices d ON d.id = a.device_id
LEFT JOIN rmm_organizations o ON o.id = d.organization_id
WHERE a.tenant_id = $1 AND a.remote_alert_uid = $2`

	markAlertConvertedSQL = `
UPDATE rmm_alerts SET
	resolved = TRUE,
	ticket_id = $3
WHERE tenant_id = $1 AND remote_alert_uid = $2 AND ticket_id IS NULL`

	releaseAlertClaimSQL = `
UPDATE rmm_alerts SET
	resolved = FALSE,
	ticket_id = NULL
WHERE tenant_id = $1 AND remote_alert_uid = $2 AND ticket_id = $3`
)

// MirrorStore persists the local cache of remote organizations, devices, and
// alerts.
type MirrorStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewMirrorStore(pool *pgxpool.Pool, log logger.Logger) *MirrorStore {
	return &MirrorStore{pool: pool, logger: log}
}

// UpsertOrganization inserts or refreshes an organization row and returns its
// local id. customer_id is untouched on update.
func (s *MirrorStore) UpsertOrganization(ctx context.Context, org *models.OrganizationMirror) (int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx, upsertOrganizationSQL,
		org.TenantID, org.RemoteOrgID, org.Name, org.Description, org.UserData, org.SyncedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert organization %d: %w", org.RemoteOrgID, err)
	}

	return id, nil
}

// UpsertDevice inserts or refreshes a device row and returns its local id.
// A nil Detail keeps any previously stored detail blob.
func (s *MirrorStore) UpsertDevice(ctx context.Context, dev *models.DeviceMirror) (int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx, upsertDeviceSQL,
		dev.TenantID, dev.RemoteDeviceID, dev.RemoteOrgID, dev.OrganizationID,
		dev.NodeClass, dev.Offline, dev.SystemName, dev.DisplayName,
		dev.LastContact, dev.Detail, dev.SyncedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert device %d: %w", dev.RemoteDeviceID, err)
	}

	return id, nil
}

// UpsertAlert inserts or refreshes an alert row and returns its local id.
// resolved and ticket_id are untouched on update.
func (s *MirrorStore) UpsertAlert(ctx context.Context, alert *models.AlertMirror) (int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx, upsertAlertSQL,
		alert.TenantID, alert.RemoteAlertUID, alert.RemoteDeviceID, alert.DeviceID,
		alert.Severity, nullableString(alert.Priority), alert.Message, alert.Source,
		alert.Data, alert.RemoteCreatedAt, alert.RemoteActivityAt, alert.SyncedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert alert %s: %w", alert.RemoteAlertUID, err)
	}

	return id, nil
}

// LookupOrganizationID resolves a remote org id to the local row id, or nil
// when the organization has not been mirrored yet.
func (s *MirrorStore) LookupOrganizationID(ctx context.Context, tenantID string, remoteOrgID int64) (*int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx, lookupOrganizationIDSQL, tenantID, remoteOrgID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("lookup organization %d: %w", remoteOrgID, err)
	}

	return &id, nil
}

// LookupDeviceID resolves a remote device id to the local row id, or nil when
// the device has not been mirrored yet.
func (s *MirrorStore) LookupDeviceID(ctx context.Context, tenantID string, remoteDeviceID int64) (*int64, error) {
	var id int64

	err := s.pool.QueryRow(ctx, lookupDeviceIDSQL, tenantID, remoteDeviceID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("lookup device %d: %w", remoteDeviceID, err)
	}

	return &id, nil
}

// Counts returns the mirrored organization and device counts for the tenant.
func (s *MirrorStore) Counts(ctx context.Context, tenantID string) (orgs, devices int64, err error) {
	if err = s.pool.QueryRow(ctx, countOrganizationsSQL, tenantID).Scan(&orgs); err != nil {
		return 0, 0, fmt.Errorf("count organizations: %w", err)
	}

	if err = s.pool.QueryRow(ctx, countDevicesSQL, tenantID).Scan(&devices); err != nil {
		return 0, 0, fmt.Errorf("count devices: %w", err)
	}

	return orgs, devices, nil
}

// GetAlertContext loads an alert with its device and organization rows joined
// in, for ticket rendering. Returns ErrNotFound when the alert is unknown.
func (s *MirrorStore) GetAlertContext(ctx context.Context, tenantID, alertUID string) (*models.AlertContext, error) {
	var (
		actx models.AlertContext

		devID          *int64
		devRemoteID    *int64
		devRemoteOrgID *int64
		devNodeClass   *string
		devOffline     *bool
		devSystemName  *string
		devDisplayName *string

		orgID         *int64
		orgRemoteID   *int64
		orgName       *string
		orgCustomerID *int64
	)

	err := s.pool.QueryRow(ctx, alertContextSQL, tenantID, alertUID).Scan(
		&actx.Alert.ID, &actx.Alert.TenantID, &actx.Alert.RemoteAlertUID,
		&actx.Alert.RemoteDeviceID, &actx.Alert.DeviceID,
		&actx.Alert.Severity, &actx.Alert.Priority, &actx.Alert.Message,
		&actx.Alert.Source, &actx.Alert.Data,
		&actx.Alert.RemoteCreatedAt, &actx.Alert.RemoteActivityAt,
		&actx.Alert.Resolved, &actx.Alert.TicketID,
		&actx.Alert.SyncedAt,
		&devID, &devRemoteID, &devRemoteOrgID, &devNodeClass, &devOffline,
		&devSystemName, &devDisplayName,
		&orgID, &orgRemoteID, &orgName, &orgCustomerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load alert context %s: %w", alertUID, err)
	}

	if devID != nil {
		actx.Device = &models.DeviceMirror{
			ID:             *devID,
			TenantID:       tenantID,
			RemoteDeviceID: *devRemoteID,
			RemoteOrgID:    *devRemoteOrgID,
			NodeClass:      models.NodeClass(*devNodeClass),
			Offline:        *devOffline,
			SystemName:     *devSystemName,
			DisplayName:    devDisplayName,
		}
	}

	if orgID != nil {
		actx.Organization = &models.OrganizationMirror{
			ID:          *orgID,
			TenantID:    tenantID,
			RemoteOrgID: *orgRemoteID,
			Name:        *orgName,
			CustomerID:  orgCustomerID,
		}
	}

	return &actx, nil
}

// MarkAlertConverted stamps the alert as resolved with its ticket id. The
// ticket_id IS NULL guard makes conversion single-shot; a second attempt
// affects zero rows and returns ErrNotFound.
func (s *MirrorStore) MarkAlertConverted(ctx context.Context, tenantID, alertUID, ticketID string) error {
	tag, err := s.pool.Exec(ctx, markAlertConvertedSQL, tenantID, alertUID, ticketID)
	if err != nil {
		return fmt.Errorf("mark alert %s converted: %w", alertUID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ReleaseAlertClaim rolls back a claim that never got its ticket. The
// ticket_id match means only the claim's owner can release it.
func (s *MirrorStore) ReleaseAlertClaim(ctx context.Context, tenantID, alertUID, ticketID string) error {
	if _, err := s.pool.Exec(ctx, releaseAlertClaimSQL, tenantID, alertUID, ticketID); err != nil {
		return fmt.Errorf("release alert %s claim: %w", alertUID, err)
	}

	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
