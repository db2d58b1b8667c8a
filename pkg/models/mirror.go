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

import (
	"encoding/json"
	"time"
)

// OrganizationMirror is the local cache row for a remote organization,
// keyed by (tenant, remote org id). CustomerID is local-only and never
// touched by a sync pass.
type OrganizationMirror struct {
	ID          int64           `json:"id"`
	TenantID    string          `json:"tenant_id"`
	RemoteOrgID int64           `json:"remote_org_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UserData    json.RawMessage `json:"user_data,omitempty"`
	CustomerID  *int64          `json:"customer_id,omitempty"`
	SyncedAt    time.Time       `json:"synced_at"`
}

// DeviceMirror is the local cache row for a remote device, keyed by
// (tenant, remote device id). OrganizationID is a soft reference to the
// organization mirror row; it resolves to nil when the parent row does not
// exist yet and is not retried within the same sync pass.
type DeviceMirror struct {
	ID             int64           `json:"id"`
	TenantID       string          `json:"tenant_id"`
	RemoteDeviceID int64           `json:"remote_device_id"`
	RemoteOrgID    int64           `json:"remote_org_id"`
	OrganizationID *int64          `json:"organization_id,omitempty"`
	NodeClass      NodeClass       `json:"node_class"`
	Offline        bool            `json:"offline"`
	SystemName     string          `json:"system_name"`
	DisplayName    *string         `json:"display_name,omitempty"`
	LastContact    *time.Time      `json:"last_contact,omitempty"`
	Detail         json.RawMessage `json:"detail,omitempty"`
	SyncedAt       time.Time       `json:"synced_at"`
}

// AlertMirror is the local cache row for a remote alert, keyed by
// (tenant, remote alert uid). Resolved and TicketID are local-only: the
// converter sets them exactly once and the sync pass never writes them.
type AlertMirror struct {
	ID               int64           `json:"id"`
	TenantID         string          `json:"tenant_id"`
	RemoteAlertUID   string          `json:"remote_alert_uid"`
	RemoteDeviceID   int64           `json:"remote_device_id"`
	DeviceID         *int64          `json:"device_id,omitempty"`
	Severity         AlertSeverity   `json:"severity"`
	Priority         string          `json:"priority,omitempty"`
	Message          string          `json:"message"`
	Source           *string         `json:"source,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	RemoteCreatedAt  *time.Time      `json:"remote_created_at,omitempty"`
	RemoteActivityAt *time.Time      `json:"remote_activity_at,omitempty"`
	Resolved         bool            `json:"resolved"`
	TicketID         *string         `json:"ticket_id,omitempty"`
	SyncedAt         time.Time       `json:"synced_at"`
}

// AlertContext joins an alert mirror with its device and organization rows
// for ticket rendering. Device and Organization may be nil when the soft
// references never resolved.
type AlertContext struct {
	Alert        AlertMirror
	Device       *DeviceMirror
	Organization *OrganizationMirror
}
