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

// Package selector implements a time-synchronized input selector: buffers
// from exactly one active sink pad are forwarded to a single src pad, gated
// on their running time, with sticky metadata replayed and discontinuities
// marked across switches.
package selector

import (
	"fmt"
	"sync"
	"time"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/errors"
	"github.com/livekit/streamselect/pkg/runtime"
	"github.com/livekit/streamselect/pkg/stats"
)

const (
	DefaultContext     = ""
	DefaultContextWait = time.Duration(0)
)

// Settings configure the scheduling context joined on Prepare.
type Settings struct {
	Context     string
	ContextWait time.Duration
}

// state tracks which sink pad is active and whether a switch is pending
// acknowledgement. switchedPad starts true so the very first forwarded
// buffer carries a discontinuity marker.
type state struct {
	activeSink  *runtime.PadSink
	switchedPad bool
}

type input struct {
	pad     *runtime.PadSink
	handler *sinkHandler
}

type InputSelector struct {
	srcPad       *runtime.PadSrc
	timeProvider runtime.TimeProvider
	monitor      *stats.Monitor
	logger       logger.Logger

	stateMu sync.Mutex
	state   state

	settingsMu sync.Mutex
	settings   Settings

	padsMu    sync.Mutex
	padSerial uint32
	sinkPads  map[string]*input
}

type Option func(*InputSelector)

// WithMonitor attaches a stats monitor recording push timings and
// forwarded/dropped counts.
func WithMonitor(m *stats.Monitor) Option {
	return func(s *InputSelector) {
		s.monitor = m
	}
}

func New(timeProvider runtime.TimeProvider, opts ...Option) *InputSelector {
	s := &InputSelector{
		srcPad:       runtime.NewPadSrc("src"),
		timeProvider: timeProvider,
		logger:       logger.GetLogger().WithValues("element", "input-selector"),
		state:        state{switchedPad: true},
		settings: Settings{
			Context:     DefaultContext,
			ContextWait: DefaultContextWait,
		},
		sinkPads: make(map[string]*input),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SrcPad returns the always-present output pad.
func (s *InputSelector) SrcPad() *runtime.PadSrc {
	return s.srcPad
}

func (s *InputSelector) SetContext(name string) {
	s.settingsMu.Lock()
	s.settings.Context = name
	s.settingsMu.Unlock()
}

func (s *InputSelector) Context() string {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	return s.settings.Context
}

func (s *InputSelector) SetContextWait(wait time.Duration) error {
	if wait < 0 || wait > runtime.MaxContextWait {
		return errors.ErrInvalidContextWait(wait)
	}

	s.settingsMu.Lock()
	s.settings.ContextWait = wait
	s.settingsMu.Unlock()
	return nil
}

func (s *InputSelector) ContextWait() time.Duration {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	return s.settings.ContextWait
}

// SetActivePad selects the sink pad buffers are forwarded from. An empty
// name deactivates forwarding entirely. A name that matches no connected pad
// leaves the selection unchanged. Re-selecting the already-active pad does
// not force another sticky replay or discontinuity.
func (s *InputSelector) SetActivePad(name string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.padsMu.Lock()
	defer s.padsMu.Unlock()

	if name == "" {
		s.state.activeSink = nil
		return
	}

	in, ok := s.sinkPads[name]
	if !ok {
		s.logger.Warnw("ignoring selection of unknown pad", nil, "pad", name)
		return
	}
	if s.state.activeSink == in.pad {
		return
	}

	s.state.activeSink = in.pad
	s.state.switchedPad = true
	s.monitor.PadSwitched()
	s.logger.Debugw("active pad changed", "pad", name)
}

// ActivePad returns the name of the currently selected sink pad, or "".
func (s *InputSelector) ActivePad() string {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.state.activeSink == nil {
		return ""
	}
	return s.state.activeSink.Name()
}

// AddInput creates a new sink pad. The first connected input becomes active
// by default.
func (s *InputSelector) AddInput() *runtime.PadSink {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.padsMu.Lock()
	defer s.padsMu.Unlock()

	name := fmt.Sprintf("sink_%d", s.padSerial)
	s.padSerial++

	handler := newSinkHandler(s)
	pad := runtime.NewPadSink(name, handler)
	pad.Activate()

	if s.state.activeSink == nil {
		s.state.activeSink = pad
		s.state.switchedPad = true
	}

	s.sinkPads[name] = &input{pad: pad, handler: handler}
	s.logger.Debugw("input added", "pad", name)
	return pad
}

// RemoveInput tears down the named sink pad. The active selection is not
// reassigned: if the removed pad was active, forwarding drops everything
// until SetActivePad is called again.
func (s *InputSelector) RemoveInput(name string) error {
	s.padsMu.Lock()
	in, ok := s.sinkPads[name]
	if ok {
		delete(s.sinkPads, name)
	}
	s.padsMu.Unlock()

	if !ok {
		return errors.ErrPadNotFound
	}

	in.handler.cancelWait()
	in.pad.Deactivate()
	s.logger.Debugw("input removed", "pad", name)
	return nil
}

// Prepare acquires the shared scheduling context named in the settings and
// attaches the src pad to it. Context acquisition failure is fatal to the
// transition and is not retried.
func (s *InputSelector) Prepare() error {
	s.logger.Debugw("preparing")

	s.settingsMu.Lock()
	settings := s.settings
	s.settingsMu.Unlock()

	ctx, err := runtime.Acquire(settings.Context, settings.ContextWait)
	if err != nil {
		return errors.ErrContextUnavailable(settings.Context, err)
	}

	if err = s.srcPad.Prepare(ctx, &srcHandler{sel: s}); err != nil {
		ctx.Release()
		return err
	}

	s.logger.Debugw("prepared")
	return nil
}

// Unprepare detaches the src pad and resets the switch state to its default.
func (s *InputSelector) Unprepare() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.logger.Debugw("unpreparing")
	s.srcPad.Unprepare()
	s.state = state{switchedPad: true}
	s.logger.Debugw("unprepared")
}
