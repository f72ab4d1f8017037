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
	"github.com/frostbyte73/core"
)

// CancelToken aborts a single in-flight wait. Cancellation may come from a
// different task than the one waiting.
type CancelToken struct {
	fuse core.Fuse
}

func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

func (t *CancelToken) Cancel() {
	t.fuse.Break()
}

func (t *CancelToken) Cancelled() <-chan struct{} {
	return t.fuse.Watch()
}

func (t *CancelToken) IsCancelled() bool {
	return t.fuse.IsBroken()
}
