// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/config"
)

// newAnalyzer builds the behavior analyzer from config.
func newAnalyzer(cfg *config.Config, sink behavior.Sink) (*behavior.Analyzer, error) {
	facing, err := behavior.ParseFacingSource(cfg.InteractionFacing)
	if err != nil {
		return nil, err
	}

	a := behavior.NewAnalyzer(behavior.Config{
		Interaction: behavior.InteractionConfig{
			Facing:         facing,
			MaxFacingAngle: cfg.InteractionMaxAngle,
			MinDistance:    cfg.InteractionMinDistance,
		},
		Posture: behavior.PostureConfig{
			MaxShoulderAngle: cfg.PostureMaxShoulderAngle,
		},
	}, sink)
	a.LogResults = cfg.LogTicks
	return a, nil
}

// bodiesHandler feeds each body tracker frame to a.
func bodiesHandler(a *behavior.Analyzer) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		bodies, err := behavior.DecodeBodies(msg.Payload())
		if err != nil {
			log.Printf("behavior: %v", err)
			return
		}
		a.OnFrame(bodies)
	}
}

// RunBehavior classifies interaction and posture from body tracker frames
// and publishes both channels to the host until SIGINT/SIGTERM.
func RunBehavior() error {
	cfg := config.Get()

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDBehavior)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	sink := bridge.NewBehaviorMQTTSink(client, cfg.TopicInteraction, cfg.TopicPosture, cfg.MQTTPublishTimeout)
	analyzer, err := newAnalyzer(cfg, sink)
	if err != nil {
		return err
	}

	if err := subscribe(client, cfg.TopicBodies, bodiesHandler(analyzer)); err != nil {
		return err
	}
	log.Printf("behavior: %s -> %s, %s (facing=%s max angle=%.0f° min distance=%.2fm shoulder=%.0f°)",
		cfg.TopicBodies, cfg.TopicInteraction, cfg.TopicPosture,
		cfg.InteractionFacing, cfg.InteractionMaxAngle, cfg.InteractionMinDistance, cfg.PostureMaxShoulderAngle)

	// Block until Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("behavior: shutting down")
	return nil
}

// publishBodies publishes one frame of bodies on topic.
func publishBodies(client mqtt.Client, topic string, bodies []behavior.Body) error {
	payload, err := json.Marshal(behavior.NewBodiesMessage(bodies))
	if err != nil {
		return err
	}

	token := client.Publish(topic, 0, false, payload)
	token.Wait()
	return token.Error()
}
