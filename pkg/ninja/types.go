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
	"encoding/json"
	"time"

	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// tokenResponse is the OAuth token endpoint response. refresh_token and
// expires_in are optional; the provider may not rotate the refresh token.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Organization is a remote organization as returned by the API.
type Organization struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	UserData    json.RawMessage `json:"userData,omitempty"`
}

// Device is a remote device as returned by the list endpoint. LastContact is
// kept raw because the API mixes Unix seconds and ISO-8601 strings; use
// ParseRemoteTime to normalize it.
type Device struct {
	ID             int64            `json:"id"`
	OrganizationID int64            `json:"organizationId"`
	NodeClass      models.NodeClass `json:"nodeClass"`
	Offline        bool             `json:"offline"`
	SystemName     string           `json:"systemName"`
	DisplayName    *string          `json:"displayName,omitempty"`
	LastContact    json.RawMessage  `json:"lastContact,omitempty"`
}

// Alert is a remote alert. The UID is globally unique within a tenant.
type Alert struct {
	UID          string          `json:"uid"`
	DeviceID     int64           `json:"deviceId"`
	Severity     string          `json:"severity"`
	Priority     string          `json:"priority,omitempty"`
	Message      string          `json:"message"`
	SourceType   *string         `json:"sourceType,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	CreateTime   json.RawMessage `json:"createTime,omitempty"`
	ActivityTime json.RawMessage `json:"activityTime,omitempty"`
}

// Sub-resources of the device detail fan-out. Every field is optional: a
// missing value stays nil rather than collapsing to a zero value that could
// be mistaken for real data.

type DeviceOS struct {
	Name         *string `json:"name,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Architecture *string `json:"architecture,omitempty"`
	BuildNumber  *string `json:"buildNumber,omitempty"`
	ReleaseID    *string `json:"releaseId,omitempty"`
	Language     *string `json:"language,omitempty"`
	NeedsReboot  *bool   `json:"needsReboot,omitempty"`
}

type DeviceSystem struct {
	Name             *string `json:"name,omitempty"`
	Manufacturer     *string `json:"manufacturer,omitempty"`
	Model            *string `json:"model,omitempty"`
	BIOSSerialNumber *string `json:"biosSerialNumber,omitempty"`
	SerialNumber     *string `json:"serialNumber,omitempty"`
	Domain           *string `json:"domain,omitempty"`
	TotalMemory      *int64  `json:"totalMemory,omitempty"`
}

type Processor struct {
	Name          *string  `json:"name,omitempty"`
	Architecture  *string  `json:"architecture,omitempty"`
	MaxClockSpeed *float64 `json:"maxClockSpeed,omitempty"`
	NumCores      *int     `json:"numCores,omitempty"`
	NumLogical    *int     `json:"numLogicalCores,omitempty"`
}

type Volume struct {
	Name       *string `json:"name,omitempty"`
	Label      *string `json:"label,omitempty"`
	DeviceType *string `json:"deviceType,omitempty"`
	FileSystem *string `json:"fileSystem,omitempty"`
	Capacity   *int64  `json:"capacity,omitempty"`
	FreeSpace  *int64  `json:"freeSpace,omitempty"`
}

type NetworkInterface struct {
	Name        *string  `json:"name,omitempty"`
	MACAddress  *string  `json:"macAddress,omitempty"`
	IPAddresses []string `json:"ipAddresses,omitempty"`
	Type        *string  `json:"type,omitempty"`
}

// DeviceDetail merges the base device record with the five sub-resource
// fetches. Any sub-resource whose fetch failed stays nil/empty; partial
// detail is strictly better than no detail.
type DeviceDetail struct {
	Device

	OS         *DeviceOS          `json:"os,omitempty"`
	System     *DeviceSystem      `json:"system,omitempty"`
	Processor  *Processor         `json:"processor,omitempty"`
	Volumes    []Volume           `json:"volumes,omitempty"`
	Interfaces []NetworkInterface `json:"interfaces,omitempty"`
}

// DeviceFilters narrows the device list call.
type DeviceFilters struct {
	OrgID     *int64
	NodeClass models.NodeClass
	Offline   *bool
}

// AlertFilters narrows the alert list call.
type AlertFilters struct {
	Severity models.AlertSeverity
	DeviceID *int64
	Since    *time.Time
}
