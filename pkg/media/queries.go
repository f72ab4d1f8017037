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

// Query is a closed set of pipeline queries. The handler answering a query
// writes its result into the query itself. Serialized queries must be
// interleaved with data flow and cannot cross task contexts.
type Query interface {
	Serialized() bool
}

// LatencyQuery reports the live flag and min/max latency bounds upstream of
// the queried pad.
type LatencyQuery struct {
	Live bool
	Min  time.Duration
	Max  time.Duration
}

func (q *LatencyQuery) Serialized() bool { return false }

type PositionQuery struct {
	Position time.Duration
}

func (q *PositionQuery) Serialized() bool { return false }

type CapsQuery struct {
	Filter string
	Caps   string
}

func (q *CapsQuery) Serialized() bool { return false }

// AllocationQuery negotiates buffer pools. Serialized with data flow.
type AllocationQuery struct {
	Caps string
}

func (q *AllocationQuery) Serialized() bool { return true }

// DrainQuery requests that all pending data be pushed. Serialized.
type DrainQuery struct{}

func (q *DrainQuery) Serialized() bool { return true }
