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

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/errors"
	"github.com/livekit/streamselect/pkg/media"
)

// SrcHandler answers queries arriving on a src pad from downstream.
type SrcHandler interface {
	HandleQuery(pad *PadSrc, query media.Query) bool
}

// DownstreamPeer receives forwarded data from a src pad.
type DownstreamPeer interface {
	Chain(buffer *media.Buffer) media.FlowReturn
	SendEvent(event media.Event) bool
	Query(query media.Query) bool
}

// PadSrc is the output endpoint. It must be prepared with a context before
// data can flow.
type PadSrc struct {
	name   string
	logger logger.Logger

	mu       sync.Mutex
	handler  SrcHandler
	context  *Context
	peer     DownstreamPeer
	prepared bool
}

func NewPadSrc(name string) *PadSrc {
	return &PadSrc{
		name:   name,
		logger: logger.GetLogger().WithValues("pad", name),
	}
}

func (p *PadSrc) Name() string {
	return p.name
}

// Prepare attaches the pad to a scheduling context and installs its handler.
func (p *PadSrc) Prepare(ctx *Context, handler SrcHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.prepared {
		return errors.ErrAlreadyPrepared
	}

	p.context = ctx
	p.handler = handler
	p.prepared = true
	return nil
}

// Unprepare detaches the pad from its context.
func (p *PadSrc) Unprepare() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.context != nil {
		p.context.Release()
		p.context = nil
	}
	p.handler = nil
	p.prepared = false
}

func (p *PadSrc) Context() *Context {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.context
}

// Link attaches the downstream peer.
func (p *PadSrc) Link(peer DownstreamPeer) {
	p.mu.Lock()
	p.peer = peer
	p.mu.Unlock()
}

func (p *PadSrc) Unlink() {
	p.mu.Lock()
	p.peer = nil
	p.mu.Unlock()
}

func (p *PadSrc) getPeer() DownstreamPeer {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.peer
}

// Push forwards a buffer downstream. May suspend under backpressure.
func (p *PadSrc) Push(buffer *media.Buffer) media.FlowReturn {
	peer := p.getPeer()
	if peer == nil {
		p.logger.Warnw("push with no downstream peer", nil)
		return media.FlowError
	}
	return peer.Chain(buffer)
}

// PushEvent forwards an event downstream.
func (p *PadSrc) PushEvent(event media.Event) bool {
	peer := p.getPeer()
	if peer == nil {
		return false
	}
	return peer.SendEvent(event)
}

// PeerQuery forwards a query to the downstream peer.
func (p *PadSrc) PeerQuery(query media.Query) bool {
	peer := p.getPeer()
	if peer == nil {
		return false
	}
	return peer.Query(query)
}

// Query asks the pad to answer a query from downstream.
func (p *PadSrc) Query(query media.Query) bool {
	p.mu.Lock()
	handler := p.handler
	p.mu.Unlock()

	if handler == nil {
		return false
	}
	return handler.HandleQuery(p, query)
}
