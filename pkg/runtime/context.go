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
	"time"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/errors"
)

// MaxContextWait bounds the poll throttle of a context.
const MaxContextWait = time.Second

// Context is a named scheduling context shared between pad tasks. Contexts
// with the same name share one throttle setting; an empty name yields a
// private context.
type Context struct {
	name string
	wait time.Duration
	refs int
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Context)
)

// Acquire returns the shared context registered under name, creating it if
// absent. wait throttles timer wakeups to at most once per period.
func Acquire(name string, wait time.Duration) (*Context, error) {
	if wait < 0 || wait > MaxContextWait {
		return nil, errors.ErrInvalidContextWait(wait)
	}

	if name == "" {
		return &Context{wait: wait}, nil
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if c, ok := registry[name]; ok {
		c.refs++
		return c, nil
	}

	c := &Context{
		name: name,
		wait: wait,
		refs: 1,
	}
	registry[name] = c
	logger.Debugw("context created", "context", name, "wait", wait)
	return c, nil
}

// Release drops a reference to the context. Named contexts are removed from
// the registry when the last reference is released.
func (c *Context) Release() {
	if c == nil || c.name == "" {
		return
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	c.refs--
	if c.refs <= 0 {
		delete(registry, c.name)
		logger.Debugw("context released", "context", c.name)
	}
}

func (c *Context) Name() string {
	return c.name
}

func (c *Context) Wait() time.Duration {
	return c.wait
}

// DelayUntil suspends the calling task until the running time reaches target.
// A clock with no valid current time is treated as already due. Only an
// explicit cancellation aborts the wait early.
func (c *Context) DelayUntil(tp TimeProvider, target time.Duration, token *CancelToken) error {
	now, ok := tp.RunningTime()
	if !ok || now >= target {
		return nil
	}

	delay := target - now
	if c.wait > 0 {
		// wakeups are throttled to the context's poll period
		if rem := delay % c.wait; rem != 0 {
			delay += c.wait - rem
		}
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-token.Cancelled():
		return errors.ErrFlushing
	}
}
