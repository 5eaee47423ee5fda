// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

// MQTTSink publishes each named channel as JSON on its own topic.
type MQTTSink struct {
	client          mqtt.Client
	topicPose       string
	topicPercentage string
	timeout         time.Duration
}

// NewMQTTSink wraps a connected client. Empty topics fall back to the
// channel names.
func NewMQTTSink(client mqtt.Client, topicPose, topicPercentage string, timeout time.Duration) *MQTTSink {
	if topicPose == "" {
		topicPose = ChannelHeadPose
	}
	if topicPercentage == "" {
		topicPercentage = ChannelStationaryPercentage
	}
	return &MQTTSink{
		client:          client,
		topicPose:       topicPose,
		topicPercentage: topicPercentage,
		timeout:         timeout,
	}
}

func (s *MQTTSink) SendPose(p orientation.Pose) error {
	return publishJSON(s.client, s.topicPose, s.timeout, NewHeadPoseMessage(p))
}

func (s *MQTTSink) SendStationaryPercentage(value float64) error {
	return publishJSON(s.client, s.topicPercentage, s.timeout, StationaryPercentageMessage{StationaryPercentage: value})
}

// BehaviorMQTTSink publishes the interaction and posture channels.
type BehaviorMQTTSink struct {
	client           mqtt.Client
	topicInteraction string
	topicPosture     string
	timeout          time.Duration
}

// NewBehaviorMQTTSink wraps a connected client. Empty topics fall back to
// the channel names.
func NewBehaviorMQTTSink(client mqtt.Client, topicInteraction, topicPosture string, timeout time.Duration) *BehaviorMQTTSink {
	if topicInteraction == "" {
		topicInteraction = ChannelInteraction
	}
	if topicPosture == "" {
		topicPosture = ChannelPosture
	}
	return &BehaviorMQTTSink{
		client:           client,
		topicInteraction: topicInteraction,
		topicPosture:     topicPosture,
		timeout:          timeout,
	}
}

func (s *BehaviorMQTTSink) SendInteraction(i behavior.Interaction) error {
	return publishJSON(s.client, s.topicInteraction, s.timeout, InteractionMessage{Interaction: int(i)})
}

func (s *BehaviorMQTTSink) SendPostures(results []behavior.PostureResult) error {
	return publishJSON(s.client, s.topicPosture, s.timeout, NewPostureMessage(results))
}

func publishJSON(client mqtt.Client, topic string, timeout time.Duration, v any) error {
	if !client.IsConnectionOpen() {
		return fmt.Errorf("%s: %w", topic, ErrSinkUnavailable)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: json marshal: %w", topic, err)
	}

	token := client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%s: publish timed out after %s: %w", topic, timeout, ErrSinkUnavailable)
	}
	if token.Error() != nil {
		return fmt.Errorf("%s: publish: %w", topic, token.Error())
	}
	return nil
}
