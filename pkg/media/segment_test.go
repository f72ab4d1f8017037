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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentToRunningTime(t *testing.T) {
	s := NewSegment()
	s.Base = 100 * time.Millisecond
	s.Start = 50 * time.Millisecond

	rt, ok := s.ToRunningTime(70 * time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, 120*time.Millisecond, rt)

	// position before the segment start has no running time
	_, ok = s.ToRunningTime(20 * time.Millisecond)
	assert.False(t, ok)

	// unset timestamps have no running time
	_, ok = s.ToRunningTime(ClockTimeNone)
	assert.False(t, ok)
}

func TestSegmentToRunningTimeRate(t *testing.T) {
	s := NewSegment()
	s.Rate = 2.0

	rt, ok := s.ToRunningTime(100 * time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, rt)

	// reverse playback uses the rate magnitude
	s.Rate = -2.0
	rt, ok = s.ToRunningTime(100 * time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, rt)
}

func TestSegmentToRunningTimeStop(t *testing.T) {
	s := NewSegment()
	s.Stop = time.Second

	_, ok := s.ToRunningTime(2 * time.Second)
	assert.False(t, ok)

	rt, ok := s.ToRunningTime(time.Second)
	require.True(t, ok)
	assert.Equal(t, time.Second, rt)
}

func TestBufferWithFlags(t *testing.T) {
	b := NewBuffer(time.Millisecond, []byte{1, 2, 3})
	require.True(t, b.HasPTS())

	c := b.WithFlags(BufferFlagDiscont)
	assert.True(t, c.Flags.Has(BufferFlagDiscont))
	assert.False(t, b.Flags.Has(BufferFlagDiscont), "original buffer must not be modified")
}
