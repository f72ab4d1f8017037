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
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/streamselect/pkg/config"
	"github.com/livekit/streamselect/pkg/errors"
	"github.com/livekit/streamselect/pkg/runtime"
	"github.com/livekit/streamselect/pkg/selector"
	"github.com/livekit/streamselect/pkg/stats"
)

func main() {
	cmd := &cli.Command{
		Name:        "streamselect",
		Usage:       "time-synchronized input selector",
		Description: "runs a simulated multi-input pipeline through the selector",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "streamselect yaml config file",
				Sources: cli.EnvVars("STREAMSELECT_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config-body",
				Usage:   "streamselect yaml config body",
				Sources: cli.EnvVars("STREAMSELECT_CONFIG_BODY"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getConfigString(cmd *cli.Command) (string, error) {
	configBody := cmd.String("config-body")
	if configBody != "" {
		return configBody, nil
	}

	configFile := cmd.String("config")
	if configFile == "" {
		return "", nil
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	confString, err := getConfigString(cmd)
	if err != nil {
		return errors.ErrCouldNotParseConfig(err)
	}

	conf, err := config.NewConfig(confString)
	if err != nil {
		return err
	}

	monitor := stats.NewMonitor(conf.NodeID)
	if err = monitor.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}
	if conf.PrometheusPort > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", conf.PrometheusPort)
			if serveErr := http.ListenAndServe(addr, mux); serveErr != nil {
				logger.Errorw("prometheus handler failed", serveErr)
			}
		}()
	}

	sel := selector.New(runtime.SystemTimeProvider(), selector.WithMonitor(monitor))
	sel.SetContext(conf.Context)
	if err = sel.SetContextWait(conf.ContextWait()); err != nil {
		return err
	}
	if err = sel.Prepare(); err != nil {
		return err
	}
	defer sel.Unprepare()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	simCtx, cancel := context.WithCancel(ctx)
	go func() {
		sig := <-stopChan
		logger.Infow("exit requested", "signal", sig)
		cancel()
	}()

	return runSimulation(simCtx, conf, sel)
}
