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

// Package tickets turns mirrored alerts into tickets.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quartzlabs/rmmbridge/pkg/db"
	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
	"github.com/quartzlabs/rmmbridge/pkg/tenant"
)

const titleMessageLimit = 80

// ErrAlreadyConverted is returned when the alert already has a ticket.
var ErrAlreadyConverted = errors.New("alert already converted to a ticket")

// AlertStore is the slice of the mirror store the converter needs.
// MarkAlertConverted returns db.ErrNotFound when the alert is already claimed.
type AlertStore interface {
	GetAlertContext(ctx context.Context, tenantID, alertUID string) (*models.AlertContext, error)
	MarkAlertConverted(ctx context.Context, tenantID, alertUID, ticketID string) error
	ReleaseAlertClaim(ctx context.Context, tenantID, alertUID, ticketID string) error
}

// TicketWriter persists tickets, allocating their sequence number.
type TicketWriter interface {
	Create(ctx context.Context, ticket *models.Ticket) error
}

// Converter builds tickets from alert mirrors. Conversion is single-shot per
// alert: the alert row is claimed before the ticket is written, so two
// concurrent conversions of the same alert produce exactly one ticket.
type Converter struct {
	alerts  AlertStore
	tickets TicketWriter
	now     func() time.Time
	logger  logger.Logger
}

func NewConverter(alerts AlertStore, tickets TicketWriter, now func() time.Time, log logger.Logger) *Converter {
	if now == nil {
		now = time.Now
	}

	return &Converter{
		alerts:  alerts,
		tickets: tickets,
		now:     now,
		logger:  log.WithComponent("tickets"),
	}
}

// Convert creates a ticket for the alert, marks the alert resolved, and
// returns the ticket. The second conversion of the same alert returns
// ErrAlreadyConverted.
func (c *Converter) Convert(ctx context.Context, tenantID, alertUID string) (*models.Ticket, error) {
	if err := tenant.Validate(tenantID); err != nil {
		return nil, err
	}

	actx, err := c.alerts.GetAlertContext(ctx, tenantID, alertUID)
	if err != nil {
		return nil, err
	}

	if actx.Alert.TicketID != nil {
		return nil, ErrAlreadyConverted
	}

	alertRef := alertUID
	ticket := &models.Ticket{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Title:       renderTitle(&actx.Alert),
		Description: renderDescription(actx),
		Priority:    PriorityFor(actx.Alert.Severity),
		Status:      models.TicketStatusOpen,
		AlertUID:    &alertRef,
		CreatedAt:   c.now(),
	}

	// Claim the alert first so a lost race never burns a sequence number.
	if err := c.alerts.MarkAlertConverted(ctx, tenantID, alertUID, ticket.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrAlreadyConverted
		}

		return nil, fmt.Errorf("claim alert %s: %w", alertUID, err)
	}

	if err := c.tickets.Create(ctx, ticket); err != nil {
		// Release the claim so the alert stays convertible on retry.
		if relErr := c.alerts.ReleaseAlertClaim(ctx, tenantID, alertUID, ticket.ID); relErr != nil {
			c.logger.Error().Err(relErr).
				Str("tenant_id", tenantID).
				Str("alert_uid", alertUID).
				Msg("failed to release alert claim after ticket insert failure")
		}

		return nil, fmt.Errorf("create ticket for alert %s: %w", alertUID, err)
	}

	c.logger.Info().
		Str("tenant_id", tenantID).
		Str("alert_uid", alertUID).
		Str("ticket_number", ticket.Number).
		Str("priority", ticket.Priority).
		Msg("alert converted to ticket")

	return ticket, nil
}

// PriorityFor maps alert severity onto ticket priority. Anything below MAJOR
// is routine.
func PriorityFor(severity models.AlertSeverity) string {
	switch severity {
	case models.SeverityCritical:
		return models.TicketPriorityUrgent
	case models.SeverityMajor:
		return models.TicketPriorityHigh
	default:
		return models.TicketPriorityNormal
	}
}

func renderTitle(alert *models.AlertMirror) string {
	msg := strings.TrimSpace(alert.Message)
	if msg == "" {
		msg = "(no message)"
	}

	if len(msg) > titleMessageLimit {
		msg = msg[:titleMessageLimit] + "..."
	}

	return fmt.Sprintf("[%s] %s", alert.Severity, msg)
}

func renderDescription(actx *models.AlertContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Alert %s\n", actx.Alert.RemoteAlertUID)
	fmt.Fprintf(&b, "Severity: %s\n", actx.Alert.Severity)

	if actx.Alert.Source != nil {
		fmt.Fprintf(&b, "Source: %s\n", *actx.Alert.Source)
	}

	if actx.Device != nil {
		name := actx.Device.SystemName
		if actx.Device.DisplayName != nil && *actx.Device.DisplayName != "" {
			name = *actx.Device.DisplayName
		}

		fmt.Fprintf(&b, "Device: %s (remote id %d)\n", name, actx.Device.RemoteDeviceID)
	}

	if actx.Organization != nil {
		fmt.Fprintf(&b, "Organization: %s\n", actx.Organization.Name)
	}

	if actx.Alert.RemoteCreatedAt != nil {
		fmt.Fprintf(&b, "Raised: %s\n", actx.Alert.RemoteCreatedAt.UTC().Format(time.RFC3339))
	}

	b.WriteString("\n")
	b.WriteString(actx.Alert.Message)

	return b.String()
}
