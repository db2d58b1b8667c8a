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
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
	"github.com/quartzlabs/rmmbridge/pkg/ninja"
	"github.com/quartzlabs/rmmbridge/pkg/tenant"
)

// Engine runs sync passes for one RMM platform connection per tenant.
//
// A pass is tolerant of per-item failures: a row that cannot be upserted is
// counted and logged, and the pass moves on. Only a failing list call aborts
// a stage.
type Engine struct {
	creds    CredentialStore
	mirrors  MirrorStore
	client   RMMClient
	clock    Clock
	metrics  Metrics
	validate *validator.Validate
	logger   logger.Logger
}

func NewEngine(creds CredentialStore, mirrors MirrorStore, client RMMClient, clock Clock, metrics Metrics, log logger.Logger) *Engine {
	if metrics == nil {
		metrics = &NoOpMetrics{}
	}

	return &Engine{
		creds:    creds,
		mirrors:  mirrors,
		client:   client,
		clock:    clock,
		metrics:  metrics,
		validate: validator.New(),
		logger:   log.WithComponent("sync"),
	}
}

// SyncAll runs a full pass in dependency order: organizations first so device
// rows can resolve their parent, then devices so alert rows can resolve
// theirs, then alerts. Stage failures are recorded in the summary and do not
// stop later stages. The tenant's last-sync stamp is written at the end of
// every pass.
func (e *Engine) SyncAll(ctx context.Context, tenantID string) (*models.SyncSummary, error) {
	if err := tenant.Validate(tenantID); err != nil {
		return nil, err
	}

	// No credentials at all is a total failure, not a partial one.
	if _, err := e.creds.Get(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	summary := &models.SyncSummary{
		TenantID:  tenantID,
		StartedAt: e.clock.Now(),
	}

	summary.Organizations = e.runStage(ctx, tenantID, "organizations", e.SyncOrganizations)
	summary.Devices = e.runStage(ctx, tenantID, "devices", e.SyncDevices)
	summary.Alerts = e.runStage(ctx, tenantID, "alerts", e.SyncAlerts)

	summary.FinishedAt = e.clock.Now()

	if err := e.creds.MarkSynced(ctx, tenantID, summary.FinishedAt); err != nil {
		e.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("failed to stamp last sync time")
	}

	orgTotal, deviceTotal, err := e.mirrors.Counts(ctx, tenantID)
	if err != nil {
		e.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("failed to count mirrored rows")
	}

	e.logger.Info().
		Str("tenant_id", tenantID).
		Int("orgs_synced", summary.Organizations.Synced).
		Int("orgs_errors", summary.Organizations.Errors).
		Int("devices_synced", summary.Devices.Synced).
		Int("devices_errors", summary.Devices.Errors).
		Int("alerts_synced", summary.Alerts.Synced).
		Int("alerts_errors", summary.Alerts.Errors).
		Int64("orgs_total", orgTotal).
		Int64("devices_total", deviceTotal).
		Dur("duration", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("sync pass complete")

	return summary, nil
}

// runStage wraps one stage with metrics. A failing list call surfaces as a
// single error in the stage result.
func (e *Engine) runStage(ctx context.Context, tenantID, stage string, fn func(context.Context, string) (models.SyncResult, error)) models.SyncResult {
	start := e.clock.Now()

	e.metrics.RecordStageAttempt(stage)

	result, err := fn(ctx, tenantID)
	duration := e.clock.Now().Sub(start)

	if err != nil {
		result.Errors++

		e.metrics.RecordStageFailure(stage, err, duration)
		e.logger.Error().Err(err).
			Str("tenant_id", tenantID).
			Str("stage", stage).
			Msg("sync stage failed")

		return result
	}

	e.metrics.RecordStageSuccess(stage, result.Synced, duration)

	return result
}

// SyncOrganizations mirrors every remote organization.
func (e *Engine) SyncOrganizations(ctx context.Context, tenantID string) (models.SyncResult, error) {
	var result models.SyncResult

	orgs, err := e.client.ListOrganizations(ctx, tenantID)
	if err != nil {
		return result, fmt.Errorf("list organizations: %w", err)
	}

	now := e.clock.Now()

	for i := range orgs {
		org := &orgs[i]

		mirror := &models.OrganizationMirror{
			TenantID:    tenantID,
			RemoteOrgID: org.ID,
			Name:        org.Name,
			Description: org.Description,
			UserData:    org.UserData,
			SyncedAt:    now,
		}

		if _, err := e.mirrors.UpsertOrganization(ctx, mirror); err != nil {
			result.Errors++
			e.logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Int64("remote_org_id", org.ID).
				Msg("organization upsert failed")

			continue
		}

		result.Synced++
	}

	return result, nil
}

// SyncDevices mirrors every remote device, resolving the parent organization
// row and attaching the detail fan-out result. A device whose detail fetch
// fails is still mirrored from its list row; an unresolvable parent leaves
// the soft reference nil.
func (e *Engine) SyncDevices(ctx context.Context, tenantID string) (models.SyncResult, error) {
	var result models.SyncResult

	devices, err := e.client.ListDevices(ctx, tenantID, ninja.DeviceFilters{})
	if err != nil {
		return result, fmt.Errorf("list devices: %w", err)
	}

	now := e.clock.Now()

	for i := range devices {
		dev := &devices[i]

		orgID, err := e.mirrors.LookupOrganizationID(ctx, tenantID, dev.OrganizationID)
		if err != nil {
			result.Errors++
			e.logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Int64("remote_device_id", dev.ID).
				Msg("organization lookup failed")

			continue
		}

		mirror := &models.DeviceMirror{
			TenantID:       tenantID,
			RemoteDeviceID: dev.ID,
			RemoteOrgID:    dev.OrganizationID,
			OrganizationID: orgID,
			NodeClass:      dev.NodeClass,
			Offline:        dev.Offline,
			SystemName:     dev.SystemName,
			DisplayName:    dev.DisplayName,
			LastContact:    ninja.ParseRemoteTime(dev.LastContact),
			Detail:         e.fetchDetail(ctx, tenantID, dev.ID),
			SyncedAt:       now,
		}

		if _, err := e.mirrors.UpsertDevice(ctx, mirror); err != nil {
			result.Errors++
			e.logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Int64("remote_device_id", dev.ID).
				Msg("device upsert failed")

			continue
		}

		result.Synced++
	}

	return result, nil
}

// fetchDetail returns the marshaled detail blob, or nil so the upsert keeps
// whatever detail is already stored.
func (e *Engine) fetchDetail(ctx context.Context, tenantID string, deviceID int64) json.RawMessage {
	detail, err := e.client.GetDeviceDetails(ctx, tenantID, deviceID)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("tenant_id", tenantID).
			Int64("remote_device_id", deviceID).
			Msg("device detail fetch failed; keeping stored detail")

		return nil
	}

	if detail == nil {
		return nil
	}

	blob, err := json.Marshal(detail)
	if err != nil {
		return nil
	}

	return blob
}

// SyncAlerts mirrors every open remote alert, resolving the device row when
// it exists.
func (e *Engine) SyncAlerts(ctx context.Context, tenantID string) (models.SyncResult, error) {
	var result models.SyncResult

	alerts, err := e.client.ListAlerts(ctx, tenantID, ninja.AlertFilters{})
	if err != nil {
		return result, fmt.Errorf("list alerts: %w", err)
	}

	now := e.clock.Now()

	for i := range alerts {
		alert := &alerts[i]

		deviceID, err := e.mirrors.LookupDeviceID(ctx, tenantID, alert.DeviceID)
		if err != nil {
			result.Errors++
			e.logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Str("remote_alert_uid", alert.UID).
				Msg("device lookup failed")

			continue
		}

		mirror := &models.AlertMirror{
			TenantID:         tenantID,
			RemoteAlertUID:   alert.UID,
			RemoteDeviceID:   alert.DeviceID,
			DeviceID:         deviceID,
			Severity:         models.ParseSeverity(alert.Severity),
			Priority:         alert.Priority,
			Message:          alert.Message,
			Source:           alert.SourceType,
			Data:             alert.Data,
			RemoteCreatedAt:  ninja.ParseRemoteTime(alert.CreateTime),
			RemoteActivityAt: ninja.ParseRemoteTime(alert.ActivityTime),
			SyncedAt:         now,
		}

		if _, err := e.mirrors.UpsertAlert(ctx, mirror); err != nil {
			result.Errors++
			e.logger.Warn().Err(err).
				Str("tenant_id", tenantID).
				Str("remote_alert_uid", alert.UID).
				Msg("alert upsert failed")

			continue
		}

		result.Synced++
	}

	return result, nil
}

// TestConnection exercises the credentials with two cheap list calls. A
// failing probe is a result, not an error.
func (e *Engine) TestConnection(ctx context.Context, tenantID string) (*models.ConnectionProbe, error) {
	if err := tenant.Validate(tenantID); err != nil {
		return nil, err
	}

	orgs, err := e.client.ListOrganizations(ctx, tenantID)
	if err != nil {
		return &models.ConnectionProbe{Error: err.Error()}, nil
	}

	devices, err := e.client.ListDevices(ctx, tenantID, ninja.DeviceFilters{})
	if err != nil {
		return &models.ConnectionProbe{Error: err.Error()}, nil
	}

	return &models.ConnectionProbe{
		OK:                true,
		OrganizationCount: len(orgs),
		DeviceCount:       len(devices),
	}, nil
}

// GetConfig returns the tenant's connection settings. The secret never
// leaves the struct's JSON form.
func (e *Engine) GetConfig(ctx context.Context, tenantID string) (*models.CredentialRecord, error) {
	if err := tenant.Validate(tenantID); err != nil {
		return nil, err
	}

	return e.creds.Get(ctx, tenantID)
}

// SaveConfig validates and stores the tenant's connection settings.
func (e *Engine) SaveConfig(ctx context.Context, tenantID string, cfg *models.CredentialConfig) error {
	if err := tenant.Validate(tenantID); err != nil {
		return err
	}

	if err := e.validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid connection settings: %w", err)
	}

	return e.creds.SaveConfig(ctx, tenantID, cfg)
}
