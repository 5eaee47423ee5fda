// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/orientation"
	"github.com/relabs-tech/head_sync/internal/tick"
)

// RunMockConsole runs the sampling pipeline against the mock anchor and the
// behavior classifiers against the mock scene, printing every channel to
// stdout. No broker is needed.
func RunMockConsole() error {
	cfg := config.Get()
	sink := bridge.NewConsoleSink(os.Stdout)

	sampler, err := newSampler(cfg, orientation.NewMockSource(), sink)
	if err != nil {
		return err
	}
	analyzer, err := newAnalyzer(cfg, sink)
	if err != nil {
		return err
	}
	scene := behavior.NewMockScene()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tick.Run(ctx, cfg.TickPeriod, func(elapsed time.Duration) {
		sampler.OnTick(elapsed)
		analyzer.OnFrame(scene.Next())
	})
}
