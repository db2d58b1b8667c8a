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

// SyncResult reports one phase of a sync pass. A failed item increments
// Errors and never aborts the loop.
type SyncResult struct {
	Synced int `json:"synced"`
	Errors int `json:"errors"`
}

// Add folds another result into this one.
func (r *SyncResult) Add(other SyncResult) {
	r.Synced += other.Synced
	r.Errors += other.Errors
}

// SyncSummary is what SyncAll hands back to the caller: structured counts
// per phase, always populated even under partial failure.
type SyncSummary struct {
	TenantID      string     `json:"tenant_id"`
	Organizations SyncResult `json:"organizations"`
	Devices       SyncResult `json:"devices"`
	Alerts        SyncResult `json:"alerts"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    time.Time  `json:"finished_at"`
}

// ConnectionProbe is the result of a lightweight connectivity test. It never
// writes to the mirror tables.
type ConnectionProbe struct {
	OK                bool   `json:"ok"`
	OrganizationCount int    `json:"organization_count"`
	DeviceCount       int    `json:"device_count"`
	Error             string `json:"error,omitempty"`
}
