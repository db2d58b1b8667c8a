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

const (
	// The counter row update takes a row lock, so concurrent allocations for
	// the same tenant serialize and every value is handed out exactly once.
	// A failed ticket insert rolls the increment back with the transaction,
	// keeping the sequence gap-free.
	nextTicketSequenceSQL = `
INSERT INTO ticket_sequences (tenant_id, n) VALUES ($1, 1)
ON CONFLICT (tenant_id) DO UPDATE SET n = ticket_sequences.n + 1
RETURNING n`

	insertTicketSQL = `
INSERT INTO tickets (
	id,
	tenant_id,
	number,
	sequence,
	title,
	description,
	priority,
	status,
	alert_uid,
	created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)`

	getTicketSQL = `
SELECT
	id, tenant_id, number, sequence, title, description, priority, status,
	alert_uid, created_at
FROM tickets
WHERE tenant_id = $1 AND id = $2`

	listTicketsSQL = `
SELECT
	id, tenant_id, number, sequence, title, description, priority, status,
	alert_uid, created_at
FROM tickets
WHERE tenant_id = $1
ORDER BY sequence DESC
LIMIT $2`
)

// TicketStore persists tickets and their per-tenant sequence counters.
type TicketStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewTicketStore(pool *pgxpool.Pool, log logger.Logger) *TicketStore {
	return &TicketStore{pool: pool, logger: log}
}

// Create allocates the next sequence value for the tenant and inserts the
// ticket in the same transaction, filling in Sequence and Number.
func (s *TicketStore) Create(ctx context.Context, ticket *models.Ticket) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create ticket: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, nextTicketSequenceSQL, ticket.TenantID).Scan(&ticket.Sequence); err != nil {
		return fmt.Errorf("create ticket: next sequence: %w", err)
	}

	ticket.Number = models.TicketNumber(ticket.Sequence)

	if _, err := tx.Exec(ctx, insertTicketSQL,
		ticket.ID, ticket.TenantID, ticket.Number, ticket.Sequence,
		ticket.Title, ticket.Description, ticket.Priority, ticket.Status,
		ticket.AlertUID, ticket.CreatedAt,
	); err != nil {
		return fmt.Errorf("create ticket: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("create ticket: commit: %w", err)
	}

	s.logger.Info().
		Str("tenant_id", ticket.TenantID).
		Str("number", ticket.Number).
		Msg("ticket created")

	return nil
}

// Get returns one ticket by id, or ErrNotFound.
func (s *TicketStore) Get(ctx context.Context, tenantID, ticketID string) (*models.Ticket, error) {
	ticket, err := scanTicket(s.pool.QueryRow(ctx, getTicketSQL, tenantID, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("get ticket %s: %w", ticketID, err)
	}

	return ticket, nil
}

// List returns the tenant's most recent tickets, newest first.
func (s *TicketStore) List(ctx context.Context, tenantID string, limit int) ([]*models.Ticket, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, listTicketsSQL, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket

	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}

		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket

	if err := row.Scan(
		&t.ID, &t.TenantID, &t.Number, &t.Sequence, &t.Title, &t.Description,
		&t.Priority, &t.Status, &t.AlertUID, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}
