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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const apiBase = "/api/v2"

// ListOrganizations fetches all organizations visible to the tenant.
// The remote list endpoints are unpaginated; see the package doc.
func (c *Client) ListOrganizations(ctx context.Context, tenantID string) ([]Organization, error) {
	var orgs []Organization
	if err := c.getList(ctx, tenantID, apiBase+"/organizations", &orgs); err != nil {
		return nil, err
	}

	if orgs == nil {
		orgs = []Organization{}
	}

	return orgs, nil
}

// GetOrganization fetches one organization by its remote id.
func (c *Client) GetOrganization(ctx context.Context, tenantID string, orgID int64) (*Organization, error) {
	raw, err := c.Call(ctx, tenantID, http.MethodGet, fmt.Sprintf("%s/organization/%d", apiBase, orgID), nil)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var org Organization
	if err := json.Unmarshal(raw, &org); err != nil {
		return nil, fmt.Errorf("parse organization: %w", err)
	}

	return &org, nil
}

// ListDevices fetches devices, optionally filtered by organization, node
// class, and offline state.
func (c *Client) ListDevices(ctx context.Context, tenantID string, filters DeviceFilters) ([]Device, error) {
	q := url.Values{}

	if filters.OrgID != nil {
		q.Set("org", strconv.FormatInt(*filters.OrgID, 10))
	}

	if filters.NodeClass != "" {
		q.Set("class", string(filters.NodeClass))
	}

	if filters.Offline != nil {
		q.Set("offline", strconv.FormatBool(*filters.Offline))
	}

	endpoint := apiBase + "/devices"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var devices []Device
	if err := c.getList(ctx, tenantID, endpoint, &devices); err != nil {
		return nil, err
	}

	if devices == nil {
		devices = []Device{}
	}

	return devices, nil
}

// ListAlerts fetches alerts, optionally filtered by severity, device, and a
// lower time bound.
func (c *Client) ListAlerts(ctx context.Context, tenantID string, filters AlertFilters) ([]Alert, error) {
	q := url.Values{}

	if filters.Severity != "" {
		q.Set("severity", string(filters.Severity))
	}

	if filters.DeviceID != nil {
		q.Set("deviceId", strconv.FormatInt(*filters.DeviceID, 10))
	}

	if filters.Since != nil {
		q.Set("since", filters.Since.UTC().Format(time.RFC3339))
	}

	endpoint := apiBase + "/alerts"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var alerts []Alert
	if err := c.getList(ctx, tenantID, endpoint, &alerts); err != nil {
		return nil, err
	}

	if alerts == nil {
		alerts = []Alert{}
	}

	return alerts, nil
}

// GetAlert fetches one alert by its remote uid.
func (c *Client) GetAlert(ctx context.Context, tenantID, uid string) (*Alert, error) {
	raw, err := c.Call(ctx, tenantID, http.MethodGet, apiBase+"/alert/"+url.PathEscape(uid), nil)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var alert Alert
	if err := json.Unmarshal(raw, &alert); err != nil {
		return nil, fmt.Errorf("parse alert: %w", err)
	}

	return &alert, nil
}

// ResetAlert acknowledges/resets the alert on the remote platform. The
// endpoint returns no content.
func (c *Client) ResetAlert(ctx context.Context, tenantID, uid string) error {
	_, err := c.Call(ctx, tenantID, http.MethodPost, apiBase+"/alert/"+url.PathEscape(uid)+"/reset", nil)
	return err
}

// getList performs a GET and decodes a JSON array, treating an empty or
// absent body as an empty list.
func (c *Client) getList(ctx context.Context, tenantID, endpoint string, out interface{}) error {
	raw, err := c.Call(ctx, tenantID, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s response: %w", endpoint, err)
	}

	return nil
}
