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

package selector

import (
	"github.com/livekit/streamselect/pkg/media"
	"github.com/livekit/streamselect/pkg/runtime"
)

// srcHandler answers downstream queries on the output pad by delegating to
// whichever input is currently active.
type srcHandler struct {
	sel *InputSelector
}

func (h *srcHandler) HandleQuery(pad *runtime.PadSrc, query media.Query) bool {
	sel := h.sel

	sel.stateMu.Lock()
	active := sel.state.activeSink
	sel.stateMu.Unlock()

	switch q := query.(type) {
	case *media.LatencyQuery:
		if active == nil {
			// safe default when nothing is selected
			q.Live = true
			q.Min = 0
			q.Max = 0
			return true
		}

		peerQuery := &media.LatencyQuery{}
		ok := active.PeerQuery(peerQuery)
		if ok {
			q.Live = peerQuery.Live
			q.Min = peerQuery.Min
			q.Max = peerQuery.Max
		}
		return ok

	default:
		if active == nil {
			return true
		}
		return active.PeerQuery(query)
	}
}
