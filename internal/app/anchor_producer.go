// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/orientation"
	"github.com/relabs-tech/head_sync/internal/tick"
)

// publishAnchor reads one pose from src and publishes it on topic.
func publishAnchor(client mqtt.Client, topic string, src orientation.Source) error {
	pose, err := src.Next()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(orientation.NewAnchorMessage(pose))
	if err != nil {
		return err
	}

	token := client.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

// RunAnchorProducer publishes mock anchor poses on the anchor topic every
// frame interval, standing in for the headset bridge.
func RunAnchorProducer() error {
	cfg := config.Get()

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDAnchor)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	src := orientation.NewMockSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("anchor producer: publishing mock anchor on %s every %s", cfg.TopicAnchorPose, cfg.FrameInterval)
	return tick.Run(ctx, cfg.FrameInterval, func(time.Duration) {
		if err := publishAnchor(client, cfg.TopicAnchorPose, src); err != nil {
			log.Printf("anchor producer: publish error: %v", err)
		}
	})
}
