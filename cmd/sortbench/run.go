// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matrixorigin/runsort/pkg/bench"
	"github.com/matrixorigin/runsort/pkg/config"
	"github.com/matrixorigin/runsort/pkg/logutil"
	"github.com/matrixorigin/runsort/pkg/util/metric"
)

func runCommand() *cobra.Command {
	var (
		configFile string
		metricAddr string
		indirect   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		Long:  "Run every configured case and print a summary per size, regime and policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("metrics") {
				params.MetricAddress = metricAddr
			}
			if cmd.Flags().Changed("indirect") {
				params.Indirect = indirect
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cmd, params)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "toml or yaml configuration, defaults apply when empty")
	cmd.Flags().StringVar(&metricAddr, "metrics", "", "serve prometheus metrics on this address")
	cmd.Flags().BoolVar(&indirect, "indirect", false, "sort row selections instead of the values")
	return cmd
}

func loadParams(path string) (*config.BenchParameters, error) {
	if path == "" {
		return config.DefaultBenchParameters(), nil
	}
	return config.LoadBenchParameters(path)
}

func runBench(ctx context.Context, cmd *cobra.Command, params *config.BenchParameters) error {
	logutil.SetupLogger(&params.Log)
	ctx = config.WithParameterUnit(ctx, config.NewParameterUnit(params))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := bench.NewRunner(config.GetParameterUnit(ctx).SV)
	logutil.Info("sortbench parameters",
		zap.String("run-id", runner.ID()),
		zap.Stringer("params", params))

	g, gctx := errgroup.WithContext(ctx)
	if params.MetricAddress != "" {
		srv := newMetricsServer(params.MetricAddress)
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logutil.Error("metrics server failed", zap.String("address", params.MetricAddress), zap.Error(err))
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	var results []bench.Result
	g.Go(func() error {
		// the metrics server lives as long as the benchmark
		defer cancel()
		var err error
		results, err = runner.Run(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := writeReport(cmd.OutOrStdout(), bench.Summarize(results)); err != nil {
		return err
	}
	return bench.Errors(results)
}

func newMetricsServer(addr string) *http.Server {
	reg := prometheus.NewRegistry()
	metric.Register(reg)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: mux}
}
