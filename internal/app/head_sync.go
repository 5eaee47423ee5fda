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

	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/headtrack"
	"github.com/relabs-tech/head_sync/internal/orientation"
	"github.com/relabs-tech/head_sync/internal/stationary"
	"github.com/relabs-tech/head_sync/internal/tick"
)

// newSampler builds the sampler and its estimator over a fresh sample log.
func newSampler(cfg *config.Config, src orientation.Source, sink bridge.Sink) (*headtrack.Sampler, error) {
	policy, err := stationary.ParsePolicy(cfg.EmptyWindowPolicy)
	if err != nil {
		return nil, err
	}

	samples := stationary.NewLog(stationary.CapacityFor(cfg.RetentionWindow, cfg.TickPeriod))
	est := stationary.NewEstimator(samples, cfg.RetentionWindow, policy, sink)
	est.LogResults = cfg.LogTicks

	return headtrack.NewSampler(headtrack.SamplerConfig{
		StationaryAngleThreshold: cfg.StationaryAngleThreshold,
		RecomputeInterval:        cfg.RecomputeInterval,
		LogTicks:                 cfg.LogTicks,
	}, src, samples, est, sink), nil
}

// RunHeadSync samples the anchor every tick and forwards the head pose and
// stationary percentage to the host over MQTT until SIGINT/SIGTERM.
func RunHeadSync() error {
	cfg := config.Get()

	src, closeSrc, err := anchorSource(cfg, cfg.MQTTClientIDSampler+"-anchor")
	if err != nil {
		return err
	}
	defer closeSrc()

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDSampler)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	var sink bridge.Sink = bridge.NewMQTTSink(client, cfg.TopicHeadPose, cfg.TopicStationaryPercentage, cfg.MQTTPublishTimeout)
	if cfg.LogTicks {
		// echo every outgoing channel message
		sink = bridge.Fanout{sink, bridge.NewConsoleSink(os.Stdout)}
	}
	sampler, err := newSampler(cfg, src, sink)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("sampling every %s: threshold=%.2f° window=%s recompute=%s -> %s, %s",
		cfg.TickPeriod, cfg.StationaryAngleThreshold, cfg.RetentionWindow, cfg.RecomputeInterval,
		cfg.TopicHeadPose, cfg.TopicStationaryPercentage)

	if err := tick.Run(ctx, cfg.TickPeriod, sampler.OnTick); err != nil {
		return err
	}
	log.Println("head sync: shutting down")
	return nil
}
