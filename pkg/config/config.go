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
	"time"

	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/streamselect/pkg/errors"
)

const (
	maxContextWaitMs = 1000

	defaultInputs           = 2
	defaultBufferIntervalMs = 20
	defaultSwitchIntervalMs = 2000
)

type Config struct {
	Logging *logger.Config `yaml:"logging"`
	NodeID  string         `yaml:"-"`

	// selector settings
	Context       string `yaml:"context"`      // shared context name, empty for private
	ContextWaitMs int    `yaml:"context_wait"` // poll throttle in ms, [0, 1000]

	PrometheusPort int `yaml:"prometheus_port"`

	// simulation settings for the demo binary
	Inputs           int `yaml:"inputs"`
	BufferIntervalMs int `yaml:"buffer_interval"`
	SwitchIntervalMs int `yaml:"switch_interval"`
}

func NewConfig(confString string) (*Config, error) {
	conf := &Config{
		Logging: &logger.Config{
			Level: "info",
		},
		Inputs:           defaultInputs,
		BufferIntervalMs: defaultBufferIntervalMs,
		SwitchIntervalMs: defaultSwitchIntervalMs,
	}
	if confString != "" {
		if err := yaml.Unmarshal([]byte(confString), conf); err != nil {
			return nil, errors.ErrCouldNotParseConfig(err)
		}
	}

	if conf.ContextWaitMs < 0 || conf.ContextWaitMs > maxContextWaitMs {
		return nil, errors.ErrInvalidContextWait(conf.ContextWaitMs)
	}
	if conf.Inputs < 1 {
		conf.Inputs = defaultInputs
	}

	// always create a new node ID
	conf.NodeID = utils.NewGuid("SS_")

	if err := conf.initLogger("nodeID", conf.NodeID); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) ContextWait() time.Duration {
	return time.Duration(c.ContextWaitMs) * time.Millisecond
}

func (c *Config) BufferInterval() time.Duration {
	return time.Duration(c.BufferIntervalMs) * time.Millisecond
}

func (c *Config) SwitchInterval() time.Duration {
	return time.Duration(c.SwitchIntervalMs) * time.Millisecond
}

func (c *Config) initLogger(values ...interface{}) error {
	zl, err := logger.NewZapLogger(c.Logging)
	if err != nil {
		return err
	}

	logger.SetLogger(zl.WithValues(values...), "streamselect")
	return nil
}
