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

	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/config"
)

// RunConsoleMQTT subscribes to every host channel and prints each message.
func RunConsoleMQTT() error {
	cfg := config.Get()

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	// Subscribe to head pose
	err = subscribe(client, cfg.TopicHeadPose, func(_ mqtt.Client, msg mqtt.Message) {
		var m bridge.HeadPoseMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: head pose unmarshal error: %v", err)
			return
		}
		bridge.PrintHeadPose(os.Stdout, m)
	})
	if err != nil {
		return err
	}

	// Subscribe to stationary percentage
	err = subscribe(client, cfg.TopicStationaryPercentage, func(_ mqtt.Client, msg mqtt.Message) {
		var m bridge.StationaryPercentageMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: stationary percentage unmarshal error: %v", err)
			return
		}
		bridge.PrintStationaryPercentage(os.Stdout, m)
	})
	if err != nil {
		return err
	}

	// Subscribe to interaction
	err = subscribe(client, cfg.TopicInteraction, func(_ mqtt.Client, msg mqtt.Message) {
		var m bridge.InteractionMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: interaction unmarshal error: %v", err)
			return
		}
		bridge.PrintInteraction(os.Stdout, m)
	})
	if err != nil {
		return err
	}

	// Subscribe to posture
	err = subscribe(client, cfg.TopicPosture, func(_ mqtt.Client, msg mqtt.Message) {
		var m bridge.PostureMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: posture unmarshal error: %v", err)
			return
		}
		bridge.PrintPostures(os.Stdout, m)
	})
	if err != nil {
		return err
	}

	// Block until Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	return nil
}
