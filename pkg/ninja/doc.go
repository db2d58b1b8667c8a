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

// Package ninja talks to the remote RMM platform's OAuth2 and resource APIs.
//
// It covers the token lifecycle (authorization-code exchange, refresh-token
// grant, expiry tracking), an authenticated client implementing the
// refresh-then-retry-once policy, and typed fetchers for organizations,
// devices (including the concurrent detail fan-out), and alerts.
//
// Known limitation: the remote list endpoints are treated as unpaginated,
// matching observed API behavior. If the platform starts paginating at
// scale, the fetchers need a cursor-following loop.
package ninja
