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

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	assert.True(t, Is(ErrPadNotFound, ErrPadNotFound))
	assert.False(t, Is(ErrPadNotFound, ErrFlushing))
}

func TestConstructors(t *testing.T) {
	err := ErrContextUnavailable("shared", New("boom"))
	assert.Contains(t, err.Error(), "shared")
	assert.Contains(t, err.Error(), "boom")

	err = ErrInvalidContextWait(5000)
	assert.Contains(t, err.Error(), "5000")
}
