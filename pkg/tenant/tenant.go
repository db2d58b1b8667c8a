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

// Package tenant provides tenant identity validation and context propagation.
//
// Every tenant of the platform has independent RMM credentials and mirror
// data; the engine never shares state across tenants. A tenant ID is an
// opaque slug: lowercase alphanumerics and hyphens, e.g. "acme-corp".
package tenant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ctxKey is the type for context keys in this package.
type ctxKey string

const tenantCtxKey ctxKey = "tenant"

var (
	// ErrInvalidTenantID indicates the tenant slug doesn't match the expected format.
	ErrInvalidTenantID = errors.New("invalid tenant id")

	// ErrNoTenantInContext indicates no tenant was found in the context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,62}$`)

// Validate checks that id is a well-formed tenant slug.
func Validate(id string) error {
	if !slugPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidTenantID, id)
	}

	return nil
}

// WithContext returns a new context with the tenant id attached.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tenantCtxKey, id)
}

// FromContext extracts the tenant id from a context.
// Returns ErrNoTenantInContext if none is present.
func FromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(tenantCtxKey).(string)
	if !ok || id == "" {
		return "", ErrNoTenantInContext
	}

	return id, nil
}

// MustFromContext extracts the tenant id from a context or panics.
// Use only when tenant presence is guaranteed (e.g., after middleware validation).
func MustFromContext(ctx context.Context) string {
	id, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}

	return id
}
