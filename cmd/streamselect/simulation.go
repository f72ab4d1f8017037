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

package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/config"
	"github.com/livekit/streamselect/pkg/errors"
	"github.com/livekit/streamselect/pkg/media"
	"github.com/livekit/streamselect/pkg/runtime"
	"github.com/livekit/streamselect/pkg/selector"
)

// logSink terminates the pipeline, counting and logging forwarded items.
type logSink struct {
	buffers atomic.Uint64
	events  atomic.Uint64
}

func (s *logSink) Chain(buffer *media.Buffer) media.FlowReturn {
	n := s.buffers.Inc()
	if buffer.Flags.Has(media.BufferFlagDiscont) {
		logger.Infow("discontinuity", "pts", buffer.PTS, "buffers", n)
	}
	return media.FlowOK
}

func (s *logSink) SendEvent(event media.Event) bool {
	s.events.Inc()
	logger.Debugw("event received", "type", event.Type().String())
	return true
}

func (s *logSink) Query(query media.Query) bool {
	return true
}

func runSimulation(ctx context.Context, conf *config.Config, sel *selector.InputSelector) error {
	sink := &logSink{}
	sel.SrcPad().Link(sink)

	pads := make([]*runtime.PadSink, 0, conf.Inputs)
	for i := 0; i < conf.Inputs; i++ {
		pad := sel.AddInput()
		pads = append(pads, pad)

		pad.PushEvent(&media.StreamStartEvent{StreamID: fmt.Sprintf("sim-%s", pad.Name())})
		pad.PushEvent(&media.CapsEvent{Caps: "video/x-raw"})
		pad.PushEvent(&media.SegmentEvent{Segment: media.NewSegment()})
	}
	defer func() {
		for _, pad := range pads {
			_ = sel.RemoveInput(pad.Name())
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	for _, pad := range pads {
		g.Go(func() error {
			return producePad(gctx, conf, pad)
		})
	}

	g.Go(func() error {
		return rotateActivePad(gctx, conf, sel, pads)
	})

	err := g.Wait()
	logger.Infow("simulation finished",
		"buffers", sink.buffers.Load(),
		"events", sink.events.Load(),
	)
	return err
}

func producePad(ctx context.Context, conf *config.Config, pad *runtime.PadSink) error {
	ticker := time.NewTicker(conf.BufferInterval())
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			pad.PushEvent(&media.FlushStartEvent{})
			return nil
		case <-ticker.C:
			buffer := media.NewBuffer(time.Since(start), nil)
			if flow := pad.Push(buffer); flow != media.FlowOK && flow != media.FlowFlushing {
				return errors.ErrFlowFailure(pad.Name(), flow)
			}
		}
	}
}

func rotateActivePad(ctx context.Context, conf *config.Config, sel *selector.InputSelector, pads []*runtime.PadSink) error {
	ticker := time.NewTicker(conf.SwitchInterval())
	defer ticker.Stop()

	next := 1
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			name := pads[next%len(pads)].Name()
			sel.SetActivePad(name)
			logger.Infow("switched", "pad", name)
			next++
		}
	}
}
