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

//go:build integration

// Container-backed store tests. These exercise the SQL itself, which the
// unit tests cannot: upsert idempotence, local-column preservation across
// re-syncs, and the gap-free ticket sequence under concurrency.
//
// Usage:
//
//	go test -tags integration ./pkg/db/...
package db

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

const postgresImage = "postgres:16-alpine"

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startPostgres launches a throwaway database, applies the migrations, and
// returns a connected pool. The container is torn down with the test.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "rmmbridge",
			"POSTGRES_PASSWORD": "rmmbridge",
			"POSTGRES_DB":       "rmmbridge",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://rmmbridge:rmmbridge@%s:%s/rmmbridge", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool, logger.NewTestLogger()))

	return pool
}

func TestMirrorStore_UpsertOrganizationIdempotent(t *testing.T) {
	pool := startPostgres(t)
	store := NewMirrorStore(pool, logger.NewTestLogger())
	ctx := context.Background()

	org := &models.OrganizationMirror{
		TenantID:    "acme",
		RemoteOrgID: 7,
		Name:        "HQ",
		SyncedAt:    time.Now().UTC(),
	}

	firstID, err := store.UpsertOrganization(ctx, org)
	require.NoError(t, err)

	// A re-run of the same row updates in place rather than inserting.
	org.Name = "HQ West"

	secondID, err := store.UpsertOrganization(ctx, org)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM rmm_organizations WHERE tenant_id = 'acme'`).Scan(&count))
	assert.Equal(t, int64(1), count)

	var name string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT name FROM rmm_organizations WHERE id = $1`, firstID).Scan(&name))
	assert.Equal(t, "HQ West", name)
}

func TestMirrorStore_ResyncPreservesLocalColumns(t *testing.T) {
	pool := startPostgres(t)
	store := NewMirrorStore(pool, logger.NewTestLogger())
	ctx := context.Background()

	org := &models.OrganizationMirror{
		TenantID:    "acme",
		RemoteOrgID: 7,
		Name:        "HQ",
		SyncedAt:    time.Now().UTC(),
	}

	orgID, err := store.UpsertOrganization(ctx, org)
	require.NoError(t, err)

	// customer_id is set locally, outside any sync pass.
	_, err = pool.Exec(ctx,
		`UPDATE rmm_organizations SET customer_id = 1234 WHERE id = $1`, orgID)
	require.NoError(t, err)

	_, err = store.UpsertOrganization(ctx, org)
	require.NoError(t, err)

	var customerID *int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT customer_id FROM rmm_organizations WHERE id = $1`, orgID).Scan(&customerID))
	require.NotNil(t, customerID)
	assert.Equal(t, int64(1234), *customerID)

	alert := &models.AlertMirror{
		TenantID:       "acme",
		RemoteAlertUID: "uid-1",
		RemoteDeviceID: 42,
		Severity:       models.SeverityCritical,
		Message:        "disk full",
		SyncedAt:       time.Now().UTC(),
	}

	_, err = store.UpsertAlert(ctx, alert)
	require.NoError(t, err)

	ticketID := uuid.NewString()
	require.NoError(t, store.MarkAlertConverted(ctx, "acme", "uid-1", ticketID))

	// The next sync pass sees the same alert again; resolved and ticket_id
	// must survive it.
	alert.Message = "disk still full"

	_, err = store.UpsertAlert(ctx, alert)
	require.NoError(t, err)

	actx, err := store.GetAlertContext(ctx, "acme", "uid-1")
	require.NoError(t, err)
	assert.True(t, actx.Alert.Resolved)
	require.NotNil(t, actx.Alert.TicketID)
	assert.Equal(t, ticketID, *actx.Alert.TicketID)
	assert.Equal(t, "disk still full", actx.Alert.Message)
}

func TestMirrorStore_DeviceDetailKeptWhenFetchFails(t *testing.T) {
	pool := startPostgres(t)
	store := NewMirrorStore(pool, logger.NewTestLogger())
	ctx := context.Background()

	dev := &models.DeviceMirror{
		TenantID:       "acme",
		RemoteDeviceID: 42,
		RemoteOrgID:    7,
		NodeClass:      models.NodeClassWindowsServer,
		SystemName:     "srv-01",
		Detail:         []byte(`{"os":{"name":"Windows Server 2022"}}`),
		SyncedAt:       time.Now().UTC(),
	}

	devID, err := store.UpsertDevice(ctx, dev)
	require.NoError(t, err)

	// A pass whose detail fetch failed upserts with a nil blob.
	dev.Detail = nil

	_, err = store.UpsertDevice(ctx, dev)
	require.NoError(t, err)

	var detail []byte
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT detail FROM rmm_devices WHERE id = $1`, devID).Scan(&detail))
	assert.JSONEq(t, `{"os":{"name":"Windows Server 2022"}}`, string(detail))
}

func TestMirrorStore_MarkAlertConvertedSingleShot(t *testing.T) {
	pool := startPostgres(t)
	store := NewMirrorStore(pool, logger.NewTestLogger())
	ctx := context.Background()

	alert := &models.AlertMirror{
		TenantID:       "acme",
		RemoteAlertUID: "uid-1",
		RemoteDeviceID: 42,
		Severity:       models.SeverityMajor,
		Message:        "cpu pegged",
		SyncedAt:       time.Now().UTC(),
	}

	_, err := store.UpsertAlert(ctx, alert)
	require.NoError(t, err)

	first := uuid.NewString()
	require.NoError(t, store.MarkAlertConverted(ctx, "acme", "uid-1", first))

	err = store.MarkAlertConverted(ctx, "acme", "uid-1", uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	// Only the claim's owner can release it.
	require.NoError(t, store.ReleaseAlertClaim(ctx, "acme", "uid-1", uuid.NewString()))

	actx, err := store.GetAlertContext(ctx, "acme", "uid-1")
	require.NoError(t, err)
	require.NotNil(t, actx.Alert.TicketID)
	assert.Equal(t, first, *actx.Alert.TicketID)

	require.NoError(t, store.ReleaseAlertClaim(ctx, "acme", "uid-1", first))

	actx, err = store.GetAlertContext(ctx, "acme", "uid-1")
	require.NoError(t, err)
	assert.False(t, actx.Alert.Resolved)
	assert.Nil(t, actx.Alert.TicketID)
}

func TestTicketStore_ConcurrentCreateIsGapFree(t *testing.T) {
	pool := startPostgres(t)
	store := NewTicketStore(pool, logger.NewTestLogger())
	ctx := context.Background()

	const workers = 16

	var wg sync.WaitGroup

	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs <- store.Create(ctx, &models.Ticket{
				ID:        uuid.NewString(),
				TenantID:  "acme",
				Title:     "load test",
				Priority:  models.TicketPriorityNormal,
				Status:    models.TicketStatusOpen,
				CreatedAt: time.Now().UTC(),
			})
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := pool.Query(ctx,
		`SELECT sequence FROM tickets WHERE tenant_id = 'acme'`)
	require.NoError(t, err)
	defer rows.Close()

	var sequences []int64

	for rows.Next() {
		var seq int64
		require.NoError(t, rows.Scan(&seq))

		sequences = append(sequences, seq)
	}
	require.NoError(t, rows.Err())

	// The allocated range is contiguous and duplicate-free.
	require.Len(t, sequences, workers)

	sort.Slice(sequences, func(i, j int) bool { return sequences[i] < sequences[j] })

	for i, seq := range sequences {
		assert.Equal(t, int64(i+1), seq)
	}
}
