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

import "strings"

// splitStatements breaks a migration file into individual statements on
// semicolons, respecting single-quoted strings, line comments, and
// dollar-quoted bodies so function definitions survive intact.
func splitStatements(content string) []string {
	var (
		statements []string
		current    strings.Builder
		inQuote    bool
		dollarTag  string
	)

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if dollarTag != "" {
			current.WriteByte(ch)

			if ch == '$' && strings.HasPrefix(content[i:], dollarTag) {
				current.WriteString(dollarTag[1:])
				i += len(dollarTag) - 1
				dollarTag = ""
			}

			continue
		}

		if inQuote {
			current.WriteByte(ch)

			if ch == '\'' {
				inQuote = false
			}

			continue
		}

		switch {
		case ch == '-' && i+1 < len(content) && content[i+1] == '-':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
		case ch == '\'':
			inQuote = true
			current.WriteByte(ch)
		case ch == '$':
			if tag := readDollarTag(content[i:]); tag != "" {
				dollarTag = tag
				current.WriteString(tag)
				i += len(tag) - 1
			} else {
				current.WriteByte(ch)
			}
		case ch == ';':
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// readDollarTag returns the $tag$ at the start of s, or "" if s does not
// start one.
func readDollarTag(s string) string {
	if s == "" || s[0] != '$' {
		return ""
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			return s[:i+1]
		}

		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return ""
		}
	}

	return ""
}
