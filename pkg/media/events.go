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

type EventType int

const (
	EventTypeStreamStart EventType = iota
	EventTypeCaps
	EventTypeSegment
	EventTypeTags
	EventTypeEOS
	EventTypeFlushStart
	EventTypeFlushStop
)

func (t EventType) String() string {
	switch t {
	case EventTypeStreamStart:
		return "stream-start"
	case EventTypeCaps:
		return "caps"
	case EventTypeSegment:
		return "segment"
	case EventTypeTags:
		return "tags"
	case EventTypeEOS:
		return "eos"
	case EventTypeFlushStart:
		return "flush-start"
	case EventTypeFlushStop:
		return "flush-stop"
	default:
		return "unknown"
	}
}

// Event is a closed set of pipeline events. Sticky events are persistent,
// order-significant announcements that a receiver expects to see again on a
// new or switched stream before data.
type Event interface {
	Type() EventType
	Sticky() bool
	Serialized() bool
}

type StreamStartEvent struct {
	StreamID string
}

func (e *StreamStartEvent) Type() EventType  { return EventTypeStreamStart }
func (e *StreamStartEvent) Sticky() bool     { return true }
func (e *StreamStartEvent) Serialized() bool { return true }

type CapsEvent struct {
	Caps string
}

func (e *CapsEvent) Type() EventType  { return EventTypeCaps }
func (e *CapsEvent) Sticky() bool     { return true }
func (e *CapsEvent) Serialized() bool { return true }

type SegmentEvent struct {
	Segment *Segment
}

func (e *SegmentEvent) Type() EventType  { return EventTypeSegment }
func (e *SegmentEvent) Sticky() bool     { return true }
func (e *SegmentEvent) Serialized() bool { return true }

type TagsEvent struct {
	Tags map[string]string
}

func (e *TagsEvent) Type() EventType  { return EventTypeTags }
func (e *TagsEvent) Sticky() bool     { return true }
func (e *TagsEvent) Serialized() bool { return true }

type EOSEvent struct{}

func (e *EOSEvent) Type() EventType  { return EventTypeEOS }
func (e *EOSEvent) Sticky() bool     { return true }
func (e *EOSEvent) Serialized() bool { return true }

// FlushStartEvent travels out of band, ahead of queued data.
type FlushStartEvent struct{}

func (e *FlushStartEvent) Type() EventType  { return EventTypeFlushStart }
func (e *FlushStartEvent) Sticky() bool     { return false }
func (e *FlushStartEvent) Serialized() bool { return false }

type FlushStopEvent struct {
	ResetTime bool
}

func (e *FlushStopEvent) Type() EventType  { return EventTypeFlushStop }
func (e *FlushStopEvent) Sticky() bool     { return false }
func (e *FlushStopEvent) Serialized() bool { return true }
