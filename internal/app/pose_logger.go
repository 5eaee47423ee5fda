// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/headtrack"
	"github.com/relabs-tech/head_sync/internal/tick"
)

// RunPoseLogger logs the anchor pose every frame interval to stderr.
func RunPoseLogger() error {
	cfg := config.Get()

	src, closeSrc, err := anchorSource(cfg, cfg.MQTTClientIDLogger)
	if err != nil {
		return err
	}
	defer closeSrc()

	logger := headtrack.NewPoseLogger(src, log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("pose logger: logging every %s", cfg.FrameInterval)
	return tick.Run(ctx, cfg.FrameInterval, func(time.Duration) { logger.OnFrame() })
}
