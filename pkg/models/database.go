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

// Database holds the Postgres connection settings.
type Database struct {
	Host            string   `koanf:"host" json:"host" validate:"required"`
	Port            int      `koanf:"port" json:"port"`
	Database        string   `koanf:"database" json:"database" validate:"required"`
	Username        string   `koanf:"username" json:"username"`
	Password        string   `koanf:"password" json:"password"`
	SSLMode         string   `koanf:"ssl_mode" json:"ssl_mode"`
	ApplicationName string   `koanf:"application_name" json:"application_name"`
	MaxConnections  int32    `koanf:"max_connections" json:"max_connections"`
	MinConnections  int32    `koanf:"min_connections" json:"min_connections"`
	MaxConnLifetime Duration `koanf:"max_conn_lifetime" json:"max_conn_lifetime"`
}
