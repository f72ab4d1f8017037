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

// ClockTimeNone marks an unset timestamp or duration.
const ClockTimeNone = time.Duration(-1)

type BufferFlags uint32

const (
	// BufferFlagDiscont signals that the buffer does not continue smoothly
	// from the previous one on its stream.
	BufferFlagDiscont BufferFlags = 1 << iota
	BufferFlagGap
	BufferFlagHeader
	BufferFlagDroppable
)

func (f BufferFlags) Has(flag BufferFlags) bool {
	return f&flag != 0
}

// Buffer is a unit of media data flowing through pads.
type Buffer struct {
	PTS      time.Duration
	Duration time.Duration
	Flags    BufferFlags
	Data     []byte
}

func NewBuffer(pts time.Duration, data []byte) *Buffer {
	return &Buffer{
		PTS:      pts,
		Duration: ClockTimeNone,
		Data:     data,
	}
}

func (b *Buffer) HasPTS() bool {
	return b.PTS != ClockTimeNone
}

// WithFlags returns a copy of the buffer with the given flags set. The
// original buffer is not modified, upstream may still hold a reference.
func (b *Buffer) WithFlags(flags BufferFlags) *Buffer {
	c := *b
	c.Flags |= flags
	return &c
}
