// Copyright 2026 LiveKit, Inc.
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

package media

import (
	"time"
)

// Segment maps an input's raw timestamps onto the pipeline running time.
type Segment struct {
	Base        time.Duration
	Start       time.Duration
	Stop        time.Duration
	Rate        float64
	AppliedRate float64
}

func NewSegment() *Segment {
	return &Segment{
		Stop:        ClockTimeNone,
		Rate:        1.0,
		AppliedRate: 1.0,
	}
}

// ToRunningTime translates a position within the segment into running time.
// Returns false when the position is unset or before the segment start.
func (s *Segment) ToRunningTime(position time.Duration) (time.Duration, bool) {
	if position == ClockTimeNone || position < s.Start {
		return 0, false
	}
	if s.Stop != ClockTimeNone && position > s.Stop {
		return 0, false
	}

	rate := s.Rate
	if rate < 0 {
		rate = -rate
	}
	if rate == 0 {
		return 0, false
	}

	return s.Base + time.Duration(float64(position-s.Start)/rate), true
}
