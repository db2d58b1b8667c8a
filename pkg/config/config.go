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

// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quartzlabs/rmmbridge/pkg/models"
)

// Config is the root configuration for the rmmbridge service.
type Config struct {
	Logging  LoggingConfig   `koanf:"logging" json:"logging"`
	Database models.Database `koanf:"database" json:"database"`
	RMM      RMMConfig       `koanf:"rmm" json:"rmm"`
	Sync     SyncConfig      `koanf:"sync" json:"sync"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Debug  bool   `koanf:"debug" json:"debug"`
	Output string `koanf:"output" json:"output" validate:"omitempty,oneof=stdout stderr"`
}

// RMMConfig tunes the HTTP client that talks to the remote platform.
type RMMConfig struct {
	HTTPTimeout    time.Duration `koanf:"http_timeout" json:"http_timeout" validate:"min=1s"`
	CircuitBreaker BreakerConfig `koanf:"circuit_breaker" json:"circuit_breaker"`
}

// BreakerConfig configures the circuit breaker wrapped around remote calls.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled" json:"enabled"`
	FailureThreshold int           `koanf:"failure_threshold" json:"failure_threshold" validate:"min=1"`
	SuccessThreshold int           `koanf:"success_threshold" json:"success_threshold" validate:"min=1"`
	Timeout          time.Duration `koanf:"timeout" json:"timeout" validate:"min=1ms"`
	ResetTimeout     time.Duration `koanf:"reset_timeout" json:"reset_timeout" validate:"min=1ms"`
}

// SyncConfig tunes the background scheduler.
type SyncConfig struct {
	PollInterval time.Duration `koanf:"poll_interval" json:"poll_interval" validate:"min=1s"`
}

func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stdout",
		},
		Database: models.Database{
			Host:            "localhost",
			Port:            5432,
			Database:        "rmmbridge",
			Username:        "rmmbridge",
			SSLMode:         "disable",
			ApplicationName: "rmmbridge",
			MaxConnections:  10,
			MinConnections:  2,
			MaxConnLifetime: models.Duration(time.Hour),
		},
		RMM: RMMConfig{
			HTTPTimeout: 30 * time.Second,
			CircuitBreaker: BreakerConfig{
				Enabled:          true,
				FailureThreshold: 5,
				SuccessThreshold: 2,
				Timeout:          30 * time.Second,
				ResetTimeout:     60 * time.Second,
			},
		},
		Sync: SyncConfig{
			PollInterval: time.Minute,
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
