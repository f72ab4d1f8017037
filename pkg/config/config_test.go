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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	conf, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, "", conf.Context)
	assert.Equal(t, time.Duration(0), conf.ContextWait())
	assert.Equal(t, defaultInputs, conf.Inputs)
	assert.NotEmpty(t, conf.NodeID)
}

func TestConfigParsing(t *testing.T) {
	conf, err := NewConfig(`
logging:
  level: debug
context: shared
context_wait: 20
inputs: 4
switch_interval: 500
`)
	require.NoError(t, err)

	assert.Equal(t, "shared", conf.Context)
	assert.Equal(t, 20*time.Millisecond, conf.ContextWait())
	assert.Equal(t, 4, conf.Inputs)
	assert.Equal(t, 500*time.Millisecond, conf.SwitchInterval())
}

func TestConfigRejectsInvalidWait(t *testing.T) {
	_, err := NewConfig("context_wait: 5000")
	require.Error(t, err)
}

func TestConfigRejectsInvalidYaml(t *testing.T) {
	_, err := NewConfig("{")
	require.Error(t, err)
}
