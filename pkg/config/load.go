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

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/rmmbridge/config.yaml",
	"/etc/rmmbridge/config.yml",
}

// Load builds the configuration from three layers, later layers winning:
// built-in defaults, an optional YAML file, then environment variables.
func Load() (*Config, error) {
	return loadFrom(findConfigFile())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	return loadFrom(path)
}

func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps flat environment variable names onto nested config paths.
// Unmapped variables are ignored so random env vars never pollute the config.
var envMappings = map[string]string{
	"log_level":  "logging.level",
	"log_debug":  "logging.debug",
	"log_output": "logging.output",

	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_name":              "database.database",
	"db_user":              "database.username",
	"db_password":          "database.password",
	"db_ssl_mode":          "database.ssl_mode",
	"db_max_connections":   "database.max_connections",
	"db_min_connections":   "database.min_connections",
	"db_max_conn_lifetime": "database.max_conn_lifetime",

	"rmm_http_timeout":              "rmm.http_timeout",
	"rmm_breaker_enabled":           "rmm.circuit_breaker.enabled",
	"rmm_breaker_failure_threshold": "rmm.circuit_breaker.failure_threshold",
	"rmm_breaker_success_threshold": "rmm.circuit_breaker.success_threshold",
	"rmm_breaker_timeout":           "rmm.circuit_breaker.timeout",
	"rmm_breaker_reset_timeout":     "rmm.circuit_breaker.reset_timeout",

	"sync_poll_interval": "sync.poll_interval",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	return ""
}
