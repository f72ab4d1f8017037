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
	"sync"

	"github.com/frostbyte73/core"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/media"
)

// SinkHandler processes items arriving on a sink pad. Buffers and serialized
// events are delivered one at a time, in arrival order, on the pad's task.
// HandleEvent is called out of band, possibly concurrently with the others.
type SinkHandler interface {
	HandleBuffer(pad *PadSink, buffer *media.Buffer) media.FlowReturn
	HandleBufferList(pad *PadSink, list []*media.Buffer) media.FlowReturn
	HandleEventSerialized(pad *PadSink, event media.Event) bool
	HandleEvent(pad *PadSink, event media.Event) bool
	HandleQuery(pad *PadSink, query media.Query) bool
}

// UpstreamPeer answers queries travelling upstream from a sink pad.
type UpstreamPeer interface {
	Query(query media.Query) bool
}

type sinkOpType int

const (
	opBuffer sinkOpType = iota
	opBufferList
	opEvent
)

type sinkOp struct {
	typ     sinkOpType
	buffer  *media.Buffer
	list    []*media.Buffer
	event   media.Event
	flowRes chan<- media.FlowReturn
	boolRes chan<- bool
}

// PadSink is an input endpoint. Each sink pad runs one task which serializes
// its buffers and serialized events.
type PadSink struct {
	name    string
	handler SinkHandler
	logger  logger.Logger

	ops    chan sinkOp
	done   core.Fuse
	exited core.Fuse
	failed atomic.Bool

	mu     sync.Mutex
	peer   UpstreamPeer
	sticky []media.Event
}

func NewPadSink(name string, handler SinkHandler) *PadSink {
	return &PadSink{
		name:    name,
		handler: handler,
		logger:  logger.GetLogger().WithValues("pad", name),
		ops:     make(chan sinkOp, 16),
	}
}

func (p *PadSink) Name() string {
	return p.name
}

// SetPeer links the upstream peer used to answer PeerQuery.
func (p *PadSink) SetPeer(peer UpstreamPeer) {
	p.mu.Lock()
	p.peer = peer
	p.mu.Unlock()
}

// Activate starts the pad task.
func (p *PadSink) Activate() {
	go p.runTask()
}

// Deactivate stops the pad task. Queued items are completed with
// FlowFlushing. Safe to call more than once.
func (p *PadSink) Deactivate() {
	p.done.Break()
	<-p.exited.Watch()
}

func (p *PadSink) runTask() {
	defer p.exited.Break()
	defer func() {
		if r := recover(); r != nil {
			// leave the pad failed rather than silently losing the task
			p.failed.Store(true)
			p.logger.Errorw("pad task panicked", nil, "panic", r)
			p.drainOps()
		}
	}()

	for {
		select {
		case op := <-p.ops:
			p.processOp(op)
		case <-p.done.Watch():
			p.drainOps()
			return
		}
	}
}

func (p *PadSink) processOp(op sinkOp) {
	switch op.typ {
	case opBuffer:
		op.flowRes <- p.handler.HandleBuffer(p, op.buffer)
	case opBufferList:
		op.flowRes <- p.handler.HandleBufferList(p, op.list)
	case opEvent:
		ok := p.handler.HandleEventSerialized(p, op.event)
		if ok && op.event.Sticky() {
			p.storeSticky(op.event)
		}
		op.boolRes <- ok
	}
}

func (p *PadSink) drainOps() {
	for {
		select {
		case op := <-p.ops:
			switch op.typ {
			case opBuffer, opBufferList:
				op.flowRes <- media.FlowFlushing
			case opEvent:
				op.boolRes <- false
			}
		default:
			return
		}
	}
}

// Push delivers a buffer to the pad task and blocks until it has been
// processed. Returns FlowFlushing if the pad is deactivated, FlowError if its
// task has failed.
func (p *PadSink) Push(buffer *media.Buffer) media.FlowReturn {
	if p.failed.Load() {
		return media.FlowError
	}

	res := make(chan media.FlowReturn, 1)
	select {
	case p.ops <- sinkOp{typ: opBuffer, buffer: buffer, flowRes: res}:
	case <-p.done.Watch():
		return media.FlowFlushing
	}

	select {
	case flow := <-res:
		return flow
	case <-p.exited.Watch():
		return media.FlowFlushing
	}
}

// PushList delivers a buffer list to the pad task.
func (p *PadSink) PushList(list []*media.Buffer) media.FlowReturn {
	if p.failed.Load() {
		return media.FlowError
	}

	res := make(chan media.FlowReturn, 1)
	select {
	case p.ops <- sinkOp{typ: opBufferList, list: list, flowRes: res}:
	case <-p.done.Watch():
		return media.FlowFlushing
	}

	select {
	case flow := <-res:
		return flow
	case <-p.exited.Watch():
		return media.FlowFlushing
	}
}

// PushEvent delivers an event to the pad. Serialized events go through the
// pad task; the rest are handled immediately on the caller.
func (p *PadSink) PushEvent(event media.Event) bool {
	if !event.Serialized() {
		return p.handler.HandleEvent(p, event)
	}
	if p.failed.Load() {
		return false
	}

	res := make(chan bool, 1)
	select {
	case p.ops <- sinkOp{typ: opEvent, event: event, boolRes: res}:
	case <-p.done.Watch():
		return false
	}

	select {
	case ok := <-res:
		return ok
	case <-p.exited.Watch():
		return false
	}
}

// Query asks the pad to answer a query from its downstream side.
func (p *PadSink) Query(query media.Query) bool {
	return p.handler.HandleQuery(p, query)
}

// PeerQuery forwards a query to the upstream peer, if linked.
func (p *PadSink) PeerQuery(query media.Query) bool {
	p.mu.Lock()
	peer := p.peer
	p.mu.Unlock()

	if peer == nil {
		return false
	}
	return peer.Query(query)
}

func (p *PadSink) storeSticky(event media.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.sticky {
		if e.Type() == event.Type() {
			p.sticky[i] = event
			return
		}
	}
	p.sticky = append(p.sticky, event)
}

// ForeachSticky visits the accumulated sticky events in announce order.
// Returning false stops the iteration.
func (p *PadSink) ForeachSticky(fn func(event media.Event) bool) {
	p.mu.Lock()
	sticky := make([]media.Event, len(p.sticky))
	copy(sticky, p.sticky)
	p.mu.Unlock()

	for _, e := range sticky {
		if !fn(e) {
			return
		}
	}
}
