// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSource keeps the newest anchor pose received on an MQTT topic.
// A pose older than staleAfter, or no pose at all, reads as
// ErrAnchorUnavailable.
type MQTTSource struct {
	mu       sync.RWMutex
	latest   Pose
	received time.Time
	havePose bool

	staleAfter time.Duration
	now        func() time.Time
}

// NewMQTTSource subscribes to topic on an already connected client.
func NewMQTTSource(client mqtt.Client, topic string, staleAfter time.Duration) (*MQTTSource, error) {
	s := newMQTTSource(staleAfter, time.Now)

	token := client.Subscribe(topic, 0, s.handleMessage)
	token.Wait()
	if token.Error() != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, token.Error())
	}
	log.Printf("mqtt source: subscribed to %s", topic)
	return s, nil
}

func newMQTTSource(staleAfter time.Duration, now func() time.Time) *MQTTSource {
	return &MQTTSource{staleAfter: staleAfter, now: now}
}

func (s *MQTTSource) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	pose, err := DecodeAnchor(msg.Payload())
	if err != nil {
		log.Printf("mqtt source: dropping message on %s: %v", msg.Topic(), err)
		return
	}

	s.mu.Lock()
	s.latest = pose
	s.received = s.now()
	s.havePose = true
	s.mu.Unlock()
}

// Next returns the newest pose if it is fresh enough.
func (s *MQTTSource) Next() (Pose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.havePose || s.now().Sub(s.received) > s.staleAfter {
		return Pose{}, ErrAnchorUnavailable
	}
	return s.latest, nil
}
