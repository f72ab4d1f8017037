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
	"sync"

	"github.com/livekit/streamselect/pkg/media"
	"github.com/livekit/streamselect/pkg/runtime"
)

// sinkHandler holds one input's synchronization state: the last-seen time
// segment, whether sticky metadata is owed on the next forwarded buffer, and
// the cancellation token of its in-flight wait. The flush-start handler may
// cancel that wait from a different task, so the token is only taken or
// replaced under the handler lock.
type sinkHandler struct {
	sel *InputSelector

	mu         sync.Mutex
	segment    *media.Segment
	sendSticky bool
	cancel     *runtime.CancelToken
}

func newSinkHandler(sel *InputSelector) *sinkHandler {
	return &sinkHandler{
		sel:        sel,
		sendSticky: true,
	}
}

func (h *sinkHandler) cancelWait() {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel.Cancel()
		h.cancel = nil
	}
	h.mu.Unlock()
}

func (h *sinkHandler) HandleBuffer(pad *runtime.PadSink, buffer *media.Buffer) media.FlowReturn {
	sel := h.sel

	var (
		stickies    []media.Event
		wait        func() error
		isActive    bool
		switchedPad bool
	)

	// snapshot switch state and this input's record in one critical section,
	// state lock first
	sel.stateMu.Lock()
	h.mu.Lock()

	switchedPad = sel.state.switchedPad

	if h.segment != nil {
		if target, ok := h.segment.ToRunningTime(buffer.PTS); ok {
			if ctx := sel.srcPad.Context(); ctx != nil {
				token := runtime.NewCancelToken()
				if h.cancel != nil {
					h.cancel.Cancel()
				}
				h.cancel = token
				tp := sel.timeProvider
				wait = func() error {
					return ctx.DelayUntil(tp, target, token)
				}
			}
		}
	}

	isActive = sel.state.activeSink == pad
	if isActive && (h.sendSticky || sel.state.switchedPad) {
		pad.ForeachSticky(func(event media.Event) bool {
			stickies = append(stickies, event)
			return true
		})
		h.sendSticky = false
		sel.state.switchedPad = false
	}

	h.mu.Unlock()
	sel.stateMu.Unlock()

	for _, event := range stickies {
		sel.srcPad.PushEvent(event)
	}

	if wait != nil {
		if err := wait(); err != nil {
			return media.FlowFlushing
		}
	}

	if !isActive {
		sel.monitor.BufferDropped(pad.Name())
		return media.FlowOK
	}

	if switchedPad && !buffer.Flags.Has(media.BufferFlagDiscont) {
		buffer = buffer.WithFlags(media.BufferFlagDiscont)
	}

	stop := sel.monitor.PushStarted(pad.Name())
	flow := sel.srcPad.Push(buffer)
	stop()

	if flow == media.FlowOK {
		sel.monitor.BufferForwarded(pad.Name())
	}
	return flow
}

func (h *sinkHandler) HandleBufferList(pad *runtime.PadSink, list []*media.Buffer) media.FlowReturn {
	// TODO: keep the list intact and forward it in one go
	for _, buffer := range list {
		if flow := h.HandleBuffer(pad, buffer); flow != media.FlowOK {
			return flow
		}
	}
	return media.FlowOK
}

func (h *sinkHandler) HandleEventSerialized(pad *runtime.PadSink, event media.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := event.(type) {
	case *media.SegmentEvent:
		// remember the segment for timing later buffers
		h.segment = e.Segment
	case *media.FlushStopEvent:
		h.cancel = nil
	}

	// sticky events are sent together with the next buffer once this becomes
	// the active pad; other serialized events are accepted but not forwarded
	if event.Sticky() {
		h.sendSticky = true
	}
	return true
}

func (h *sinkHandler) HandleEvent(pad *runtime.PadSink, event media.Event) bool {
	switch event.(type) {
	case *media.FlushStartEvent:
		// unblock downstream before unwinding our own wait
		h.sel.srcPad.PushEvent(event)
		h.cancelWait()
	}
	return true
}

func (h *sinkHandler) HandleQuery(pad *runtime.PadSink, query media.Query) bool {
	if query.Serialized() {
		// answering these would require coordinating across input tasks
		return false
	}
	return h.sel.srcPad.PeerQuery(query)
}
