// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/head_sync/internal/config"
)

// RunWeb serves a live dashboard of both host channels.
func RunWeb() error {
	cfg := config.Get()
	d := newDashboard(cfg.WebHistorySize)

	// 1) Connect to MQTT broker
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	// 2) Subscribe to both channels
	err = subscribe(client, cfg.TopicHeadPose, func(_ mqtt.Client, msg mqtt.Message) {
		if err := d.handleHeadPose(msg.Payload()); err != nil {
			log.Printf("web: head pose unmarshal error: %v", err)
		}
	})
	if err != nil {
		return err
	}
	err = subscribe(client, cfg.TopicStationaryPercentage, func(_ mqtt.Client, msg mqtt.Message) {
		if err := d.handleStationaryPercentage(msg.Payload()); err != nil {
			log.Printf("web: stationary percentage unmarshal error: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// 3) API, websocket stream and static files from ./web
	mux := http.NewServeMux()
	d.routes(mux, "web")

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
