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

	"golang.org/x/sync/errgroup"
)

// GetDeviceDetails fetches the base device record and fans out the five
// sub-resource fetches concurrently. A sub-fetch failure degrades that field
// to absent and is logged; only a failing base fetch makes the whole call
// fail. Returns (nil, nil) when the device does not exist, distinguishing
// "device gone" from "detail degraded".
func (c *Client) GetDeviceDetails(ctx context.Context, tenantID string, deviceID int64) (*DeviceDetail, error) {
	base := fmt.Sprintf("%s/device/%d", apiBase, deviceID)

	raw, err := c.Call(ctx, tenantID, http.MethodGet, base, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	detail := &DeviceDetail{}
	if err := json.Unmarshal(raw, &detail.Device); err != nil {
		return nil, fmt.Errorf("parse device: %w", err)
	}

	var (
		osInfo     DeviceOS
		system     DeviceSystem
		processors []Processor
		volumes    []Volume
		interfaces []NetworkInterface
	)

	// Sub-fetches never propagate errors; each one degrades independently.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if ok := c.subFetch(gctx, tenantID, base+"/os", &osInfo); ok {
			detail.OS = &osInfo
		}

		return nil
	})

	g.Go(func() error {
		if ok := c.subFetch(gctx, tenantID, base+"/system", &system); ok {
			detail.System = &system
		}

		return nil
	})

	g.Go(func() error {
		// Devices may report several logical processors; only the primary
		// one is surfaced.
		if ok := c.subFetch(gctx, tenantID, base+"/processors", &processors); ok && len(processors) > 0 {
			detail.Processor = &processors[0]
		}

		return nil
	})

	g.Go(func() error {
		if ok := c.subFetch(gctx, tenantID, base+"/disks", &volumes); ok {
			detail.Volumes = volumes
		}

		return nil
	})

	g.Go(func() error {
		if ok := c.subFetch(gctx, tenantID, base+"/network-interfaces", &interfaces); ok {
			detail.Interfaces = interfaces
		}

		return nil
	})

	_ = g.Wait()

	return detail, nil
}

func (c *Client) subFetch(ctx context.Context, tenantID, endpoint string, out interface{}) bool {
	raw, err := c.Call(ctx, tenantID, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("tenant_id", tenantID).
			Str("endpoint", endpoint).
			Msg("Device detail sub-fetch failed; continuing with partial detail")

		return false
	}

	if len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn().Err(err).
			Str("endpoint", endpoint).
			Msg("Device detail sub-fetch returned unparsable payload")

		return false
	}

	return true
}
