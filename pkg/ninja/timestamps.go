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

package ninja

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ParseRemoteTime normalizes the API's mixed timestamp encodings to a UTC
// instant with millisecond precision. Accepted inputs: a JSON number or
// all-digit string (Unix seconds, fractional allowed) and an ISO-8601/RFC3339
// string. Anything else yields nil, never "now".
func ParseRemoteTime(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}

	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	// JSON number: Unix seconds, possibly fractional.
	if s[0] != '"' {
		if secs, err := strconv.ParseFloat(s, 64); err == nil {
			return fromUnixSeconds(secs)
		}

		return nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}

	return parseTimeString(str)
}

func parseTimeString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if isAllDigits(s) {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}

		return fromUnixSeconds(secs)
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC().Truncate(time.Millisecond)
			return &t
		}
	}

	return nil
}

func fromUnixSeconds(secs float64) *time.Time {
	t := time.UnixMilli(int64(secs * 1000)).UTC()
	return &t
}

func isAllDigits(s string) bool {
	dots := 0

	for _, r := range s {
		if r == '.' {
			dots++
			if dots > 1 {
				return false
			}

			continue
		}

		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
