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

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/tick"
)

// RunBodiesProducer publishes a mock two-person scene on the bodies topic,
// standing in for the body tracker.
func RunBodiesProducer() error {
	cfg := config.Get()

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDBodies)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	scene := behavior.NewMockScene()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("bodies producer: publishing mock bodies on %s every %s", cfg.TopicBodies, cfg.BodiesInterval)
	return tick.Run(ctx, cfg.BodiesInterval, func(time.Duration) {
		if err := publishBodies(client, cfg.TopicBodies, scene.Next()); err != nil {
			log.Printf("bodies producer: publish error: %v", err)
		}
	})
}
