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
	"fmt"
	"time"
)

// Ticket priorities, mapped from alert severity by the converter.
const (
	TicketPriorityUrgent = "urgent"
	TicketPriorityHigh   = "high"
	TicketPriorityNormal = "normal"
)

const TicketStatusOpen = "open"

// Ticket is the record the converter writes into the external ticket store.
// Number is tenant-scoped, sequential, and gap-free under concurrency.
type Ticket struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Number      string    `json:"number"`
	Sequence    int64     `json:"sequence"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	AlertUID    *string   `json:"alert_uid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketNumber renders a sequence value as the display number, zero-padded to
// six digits.
func TicketNumber(seq int64) string {
	return fmt.Sprintf("TKT-%06d", seq)
}
