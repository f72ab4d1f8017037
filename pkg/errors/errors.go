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
	"errors"
	"fmt"
)

var (
	ErrPadNotFound      = errors.New("pad not found")
	ErrPadAlreadyLinked = errors.New("pad already linked")
	ErrPadNotPrepared   = errors.New("pad not prepared")
	ErrNotPrepared      = errors.New("element not prepared")
	ErrAlreadyPrepared  = errors.New("element already prepared")
	ErrFlushing         = errors.New("flushing")
)

func New(err string) error {
	return errors.New(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func ErrCouldNotParseConfig(err error) error {
	return fmt.Errorf("could not parse config: %v", err)
}

func ErrContextUnavailable(name string, err error) error {
	return fmt.Errorf("failed to acquire context %q: %v", name, err)
}

func ErrInvalidContextWait(wait interface{}) error {
	return fmt.Errorf("context wait %v out of range [0ms, 1000ms]", wait)
}

func ErrPadLinkFailed(src, sink, status string) error {
	return fmt.Errorf("failed to link %s to %s: %s", src, sink, status)
}

func ErrNotSupported(feature string) error {
	return fmt.Errorf("%s is not yet supported", feature)
}

func ErrFlowFailure(pad string, flow fmt.Stringer) error {
	return fmt.Errorf("pad %s returned %s", pad, flow.String())
}
