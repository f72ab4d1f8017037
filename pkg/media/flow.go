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

// FlowReturn is the result of pushing a buffer downstream.
type FlowReturn int

const (
	FlowOK FlowReturn = iota
	FlowFlushing
	FlowEOS
	FlowNotNegotiated
	FlowError
)

func (f FlowReturn) String() string {
	switch f {
	case FlowOK:
		return "ok"
	case FlowFlushing:
		return "flushing"
	case FlowEOS:
		return "eos"
	case FlowNotNegotiated:
		return "not-negotiated"
	case FlowError:
		return "error"
	default:
		return "unknown"
	}
}
