// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"

	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

// anchorSource picks the anchor provider from config. clientID is used
// only for the mqtt source; the returned close func disconnects it.
func anchorSource(cfg *config.Config, clientID string) (orientation.Source, func(), error) {
	switch cfg.AnchorSource {
	case config.AnchorSourceMock:
		log.Println("using mock anchor source")
		return orientation.NewMockSource(), func() {}, nil

	case config.AnchorSourceMQTT:
		client, err := connectMQTT(cfg.MQTTBroker, clientID)
		if err != nil {
			return nil, nil, err
		}
		src, err := orientation.NewMQTTSource(client, cfg.TopicAnchorPose, cfg.AnchorStaleAfter)
		if err != nil {
			client.Disconnect(250)
			return nil, nil, err
		}
		log.Printf("using MQTT anchor source on %s (stale after %s)", cfg.TopicAnchorPose, cfg.AnchorStaleAfter)
		return src, func() { client.Disconnect(250) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown anchor source %q", cfg.AnchorSource)
	}
}
