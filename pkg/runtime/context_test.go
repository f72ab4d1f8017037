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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/livekit/streamselect/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualClock struct {
	mu    sync.Mutex
	now   time.Duration
	valid bool
}

func (c *manualClock) RunningTime() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now, c.valid
}

func (c *manualClock) set(now time.Duration) {
	c.mu.Lock()
	c.now = now
	c.valid = true
	c.mu.Unlock()
}

func TestAcquireSharesNamedContexts(t *testing.T) {
	c1, err := Acquire("shared", 0)
	require.NoError(t, err)
	defer c1.Release()

	c2, err := Acquire("shared", 10*time.Millisecond)
	require.NoError(t, err)
	defer c2.Release()

	assert.Same(t, c1, c2)
	// the first acquisition's throttle wins
	assert.Equal(t, time.Duration(0), c2.Wait())
}

func TestAcquirePrivateContexts(t *testing.T) {
	c1, err := Acquire("", 0)
	require.NoError(t, err)
	c2, err := Acquire("", 0)
	require.NoError(t, err)

	assert.NotSame(t, c1, c2)
}

func TestAcquireReleaseRemovesContext(t *testing.T) {
	c1, err := Acquire("transient", 0)
	require.NoError(t, err)
	c1.Release()

	c2, err := Acquire("transient", 0)
	require.NoError(t, err)
	defer c2.Release()

	assert.NotSame(t, c1, c2)
}

func TestAcquireRejectsInvalidWait(t *testing.T) {
	_, err := Acquire("x", -time.Millisecond)
	require.Error(t, err)

	_, err = Acquire("x", 2*time.Second)
	require.Error(t, err)
}

func TestDelayUntilAlreadyDue(t *testing.T) {
	ctx, err := Acquire("", 0)
	require.NoError(t, err)

	clock := &manualClock{}
	clock.set(time.Second)

	start := time.Now()
	require.NoError(t, ctx.DelayUntil(clock, 500*time.Millisecond, NewCancelToken()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDelayUntilNoValidTime(t *testing.T) {
	ctx, err := Acquire("", 0)
	require.NoError(t, err)

	// an invalid current time is treated as already due
	start := time.Now()
	require.NoError(t, ctx.DelayUntil(NopTimeProvider(), time.Hour, NewCancelToken()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDelayUntilWaits(t *testing.T) {
	ctx, err := Acquire("", 0)
	require.NoError(t, err)

	clock := &manualClock{}
	clock.set(0)

	start := time.Now()
	require.NoError(t, ctx.DelayUntil(clock, 50*time.Millisecond, NewCancelToken()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestDelayUntilCancelled(t *testing.T) {
	ctx, err := Acquire("", 0)
	require.NoError(t, err)

	clock := &manualClock{}
	clock.set(0)

	token := NewCancelToken()
	done := make(chan error, 1)
	go func() {
		done <- ctx.DelayUntil(clock, time.Minute, token)
	}()

	token.Cancel()

	select {
	case waitErr := <-done:
		require.ErrorIs(t, waitErr, errors.ErrFlushing)
	case <-time.After(time.Second):
		t.Fatal("wait did not unwind after cancellation")
	}
}
