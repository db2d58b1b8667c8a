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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemoteTime_UnixSecondsString(t *testing.T) {
	got := ParseRemoteTime(json.RawMessage(`"1700000000"`))
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000000), got.UnixMilli())
}

func TestParseRemoteTime_ISOString(t *testing.T) {
	got := ParseRemoteTime(json.RawMessage(`"2023-11-14T22:13:20.000Z"`))
	require.NotNil(t, got)

	// Same instant as Unix seconds 1700000000.
	assert.Equal(t, int64(1700000000000), got.UnixMilli())
}

func TestParseRemoteTime_Garbage(t *testing.T) {
	assert.Nil(t, ParseRemoteTime(json.RawMessage(`"not-a-date"`)))
}

func TestParseRemoteTime_JSONNumber(t *testing.T) {
	got := ParseRemoteTime(json.RawMessage(`1700000000`))
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000000), got.UnixMilli())
}

func TestParseRemoteTime_FractionalSeconds(t *testing.T) {
	got := ParseRemoteTime(json.RawMessage(`1700000000.5`))
	require.NotNil(t, got)
	assert.Equal(t, int64(1700000000500), got.UnixMilli())
}

func TestParseRemoteTime_NullAndEmpty(t *testing.T) {
	assert.Nil(t, ParseRemoteTime(nil))
	assert.Nil(t, ParseRemoteTime(json.RawMessage(`null`)))
	assert.Nil(t, ParseRemoteTime(json.RawMessage(`""`)))
}

func TestParseRemoteTime_MillisecondPrecision(t *testing.T) {
	got := ParseRemoteTime(json.RawMessage(`"2023-11-14T22:13:20.123456789Z"`))
	require.NotNil(t, got)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, int64(1700000000123), got.UnixMilli())
}
