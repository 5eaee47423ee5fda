// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package mqtttest provides in-memory stand-ins for the paho MQTT client so
// publishers and subscribers can be tested without a broker.
package mqtttest

import (
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Token is a completed mqtt.Token.
type Token struct {
	Err     error
	Timeout bool // WaitTimeout reports false, as if the broker never acked
}

func (t *Token) Wait() bool { return !t.Timeout }

func (t *Token) WaitTimeout(time.Duration) bool { return !t.Timeout }

func (t *Token) Done() <-chan struct{} {
	ch := make(chan struct{})
	if !t.Timeout {
		close(ch)
	}
	return ch
}

func (t *Token) Error() error { return t.Err }

// Message is a received mqtt.Message.
type Message struct {
	TopicName string
	Body      []byte
}

func (m Message) Duplicate() bool   { return false }
func (m Message) Qos() byte         { return 0 }
func (m Message) Retained() bool    { return false }
func (m Message) Topic() string     { return m.TopicName }
func (m Message) MessageID() uint16 { return 0 }
func (m Message) Payload() []byte   { return m.Body }
func (m Message) Ack()              {}

// Published is one recorded Publish call.
type Published struct {
	Topic    string
	Retained bool
	Payload  []byte
}

// Client records publishes and subscriptions. Methods that are not
// overridden panic through the nil embedded interface.
type Client struct {
	mqtt.Client

	mu        sync.Mutex
	Closed    bool   // IsConnectionOpen reports !Closed
	PubToken  *Token // returned by Publish when set
	SubToken  *Token // returned by Subscribe when set
	published []Published
	handlers  map[string]mqtt.MessageHandler
}

// NewClient returns an open fake client.
func NewClient() *Client {
	return &Client{handlers: map[string]mqtt.MessageHandler{}}
}

func (c *Client) IsConnected() bool { return c.IsConnectionOpen() }

func (c *Client) IsConnectionOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.Closed
}

func (c *Client) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
}

func (c *Client) Publish(topic string, _ byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = append([]byte(nil), p...)
	case string:
		body = []byte(p)
	}
	c.published = append(c.published, Published{Topic: topic, Retained: retained, Payload: body})

	if c.PubToken != nil {
		return c.PubToken
	}
	return &Token{}
}

func (c *Client) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SubToken != nil && c.SubToken.Err != nil {
		return c.SubToken
	}
	c.handlers[topic] = callback
	return &Token{}
}

// Deliver hands payload to the handler subscribed on topic, as the broker
// would. It reports whether a handler was subscribed.
func (c *Client) Deliver(topic string, payload []byte) bool {
	c.mu.Lock()
	h, ok := c.handlers[topic]
	c.mu.Unlock()
	if !ok {
		return false
	}
	h(c, Message{TopicName: topic, Body: payload})
	return true
}

// Published returns a copy of every recorded publish.
func (c *Client) Published() []Published {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Published, len(c.published))
	copy(out, c.published)
	return out
}
