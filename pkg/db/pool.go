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
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quartzlabs/rmmbridge/pkg/logger"
	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// NewPool dials the configured Postgres instance and returns a pgx pool.
func NewPool(ctx context.Context, cfg *models.Database, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, errNilDatabaseConfig
	}

	settings := *cfg
	if settings.Port == 0 {
		settings.Port = 5432
	}

	connURL := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", settings.Host, settings.Port),
		Path:   "/" + settings.Database,
	}

	if settings.Username != "" {
		if settings.Password != "" {
			connURL.User = url.UserPassword(settings.Username, settings.Password)
		} else {
			connURL.User = url.User(settings.Username)
		}
	}

	query := connURL.Query()

	sslMode := settings.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	query.Set("sslmode", sslMode)

	if settings.ApplicationName != "" {
		query.Set("application_name", settings.ApplicationName)
	}

	connURL.RawQuery = query.Encode()

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse connection string: %w", err)
	}

	if settings.MaxConnections > 0 {
		poolConfig.MaxConns = settings.MaxConnections
	}

	if settings.MinConnections > 0 {
		poolConfig.MinConns = settings.MinConnections
	}

	if settings.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(settings.MaxConnLifetime)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("db: failed to initialize pool: %w", err)
	}

	if log != nil {
		log.Info().
			Str("host", settings.Host).
			Int("port", settings.Port).
			Int32("max_conns", poolConfig.MaxConns).
			Msg("connected to Postgres")
	}

	return pool, nil
}
