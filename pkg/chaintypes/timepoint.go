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
	"encoding/json"
	"fmt"
	"time"

	"github.com/alacrityio/abiala/pkg/binstream"
)

const timePointLayout = "2006-01-02T15:04:05"
const timePointLayoutMillis = "2006-01-02T15:04:05.000"

// TimePoint is signed microseconds since the Unix epoch. Its JSON form is an
// ISO-8601 timestamp in UTC with no zone suffix.
type TimePoint int64

func (tp TimePoint) asTime() time.Time {
	micros := int64(tp)
	return time.Unix(micros/1_000_000, (micros%1_000_000)*1000).UTC()
}

func (tp TimePoint) String() string {
	t := tp.asTime()
	if t.Nanosecond() == 0 {
		return t.Format(timePointLayout)
	}
	return t.Format(timePointLayoutMillis)
}

// ParseTimePoint parses an ISO-8601 timestamp (with or without a
// millisecond fraction) as UTC.
func ParseTimePoint(s string) (TimePoint, error) {
	layout := timePointLayout
	if len(s) > len(timePointLayout) {
		layout = timePointLayoutMillis
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time point %q: %s", ErrBadNumber, s, err)
	}
	return TimePoint(t.UnixMicro()), nil
}

func (tp TimePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(tp.String())
}

func (tp *TimePoint) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimePoint(s)
	if err != nil {
		return err
	}
	*tp = parsed
	return nil
}

func (tp TimePoint) ToBin(w binstream.Writer) error {
	return binstream.WriteUint64(w, uint64(tp))
}

func FromBinTimePoint(r *binstream.Reader) (TimePoint, error) {
	v, err := binstream.ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return TimePoint(v), nil
}

// TimePointSec is 32-bit seconds since the Unix epoch.
type TimePointSec uint32

func (tps TimePointSec) String() string {
	return time.Unix(int64(tps), 0).UTC().Format(timePointLayout)
}

func ParseTimePointSec(s string) (TimePointSec, error) {
	t, err := time.Parse(timePointLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time point sec %q: %s", ErrBadNumber, s, err)
	}
	return TimePointSec(t.Unix()), nil
}

func (tps TimePointSec) MarshalJSON() ([]byte, error) {
	return json.Marshal(tps.String())
}

func (tps *TimePointSec) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimePointSec(s)
	if err != nil {
		return err
	}
	*tps = parsed
	return nil
}

func (tps TimePointSec) ToBin(w binstream.Writer) error {
	return binstream.WriteUint32(w, uint32(tps))
}

func FromBinTimePointSec(r *binstream.Reader) (TimePointSec, error) {
	v, err := binstream.ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return TimePointSec(v), nil
}

// blockTimestampEpochMillis is the contract epoch block timestamps count
// half-second slots from: 2000-01-01T00:00:00.000 UTC.
const blockTimestampEpochMillis = 946684800000

// BlockTimestamp is 32-bit half-second slots since blockTimestampEpochMillis.
type BlockTimestamp uint32

func (bt BlockTimestamp) asTime() time.Time {
	millis := blockTimestampEpochMillis + int64(bt)*500
	return time.UnixMilli(millis).UTC()
}

func (bt BlockTimestamp) String() string {
	return bt.asTime().Format(timePointLayoutMillis)
}

func ParseBlockTimestamp(s string) (BlockTimestamp, error) {
	layout := timePointLayout
	if len(s) > len(timePointLayout) {
		layout = timePointLayoutMillis
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad block timestamp %q: %s", ErrBadNumber, s, err)
	}
	millis := t.UnixMilli() - blockTimestampEpochMillis
	if millis < 0 {
		return 0, badNumberf("block timestamp %q is before the contract epoch", s)
	}
	return BlockTimestamp(millis / 500), nil
}

func (bt BlockTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(bt.String())
}

func (bt *BlockTimestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseBlockTimestamp(s)
	if err != nil {
		return err
	}
	*bt = parsed
	return nil
}

func (bt BlockTimestamp) ToBin(w binstream.Writer) error {
	return binstream.WriteUint32(w, uint32(bt))
}

func FromBinBlockTimestamp(r *binstream.Reader) (BlockTimestamp, error) {
	v, err := binstream.ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return BlockTimestamp(v), nil
}
