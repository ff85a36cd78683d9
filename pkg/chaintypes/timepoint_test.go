// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chaintypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimePointRoundTripNoFraction(t *testing.T) {
	tp, err := ParseTimePoint("2022-06-15T10:30:00")
	assert.NoError(t, err)
	assert.Equal(t, "2022-06-15T10:30:00", tp.String())
}

func TestTimePointRoundTripWithFraction(t *testing.T) {
	tp, err := ParseTimePoint("2022-06-15T10:30:00.250")
	assert.NoError(t, err)
	assert.Equal(t, "2022-06-15T10:30:00.250", tp.String())
}

func TestTimePointSecRoundTrip(t *testing.T) {
	tps, err := ParseTimePointSec("2022-06-15T10:30:00")
	assert.NoError(t, err)
	assert.Equal(t, "2022-06-15T10:30:00", tps.String())
}

func TestBlockTimestampRoundTrip(t *testing.T) {
	bt, err := ParseBlockTimestamp("2022-06-15T10:30:00.500")
	assert.NoError(t, err)
	assert.Equal(t, "2022-06-15T10:30:00.500", bt.String())
}

func TestBlockTimestampEpoch(t *testing.T) {
	assert.Equal(t, "2000-01-01T00:00:00.000", BlockTimestamp(0).String())
}
