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

package runtime

import (
	"time"
)

// TimeProvider supplies the running time of a pipeline. A false return means
// no valid time is currently available.
type TimeProvider interface {
	RunningTime() (time.Duration, bool)
}

var _ TimeProvider = (*nopTimeProvider)(nil)

type nopTimeProvider struct{}

// NopTimeProvider returns a TimeProvider that always reports unavailable
// times.
func NopTimeProvider() TimeProvider {
	return &nopTimeProvider{}
}

func (n *nopTimeProvider) RunningTime() (time.Duration, bool) {
	return 0, false
}

type systemTimeProvider struct {
	start time.Time
}

// SystemTimeProvider returns a TimeProvider whose running time is the wall
// clock time elapsed since this call.
func SystemTimeProvider() TimeProvider {
	return &systemTimeProvider{start: time.Now()}
}

func (s *systemTimeProvider) RunningTime() (time.Duration, bool) {
	return time.Since(s.start), true
}
