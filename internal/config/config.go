// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Anchor source kinds accepted by ANCHOR_SOURCE.
const (
	AnchorSourceMock = "mock"
	AnchorSourceMQTT = "mqtt"
)

// Empty window policies accepted by EMPTY_WINDOW_POLICY.
const (
	EmptyWindowSkip = "skip"
	EmptyWindowZero = "zero"
)

// Facing sources accepted by INTERACTION_FACING.
const (
	FacingRoot = "root"
	FacingHead = "head"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDSampler  string
	MQTTClientIDLogger   string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDAnchor   string
	MQTTClientIDBehavior string
	MQTTClientIDBodies   string
	MQTTPublishTimeout   time.Duration

	// Topics (named channels towards the host, and the anchor input)
	TopicHeadPose             string
	TopicStationaryPercentage string
	TopicAnchorPose           string

	// Anchor
	AnchorSource     string        // "mock" or "mqtt"
	AnchorStaleAfter time.Duration // an mqtt anchor pose older than this counts as unavailable

	// Sampling
	TickPeriod               time.Duration
	RecomputeInterval        time.Duration
	StationaryAngleThreshold float64 // degrees
	RetentionWindow          time.Duration
	EmptyWindowPolicy        string // "skip" or "zero"

	// Pose logger
	FrameInterval time.Duration

	// Behavior (body tracker input, interaction and posture channels)
	TopicBodies             string
	TopicInteraction        string
	TopicPosture            string
	InteractionFacing       string  // "root" or "head"
	InteractionMaxAngle     float64 // degrees
	InteractionMinDistance  float64 // metres
	PostureMaxShoulderAngle float64 // degrees
	BodiesInterval          time.Duration

	// Logging
	LogTicks bool

	// Web Server
	WebServerPort  int
	WebHistorySize int
}

// Package-level unexported variables for the singleton:
//   - globalConfig: only reachable through InitGlobal() and Get().
//   - configOnce: InitGlobal() runs once, even if called multiple times.
//   - configMu: write lock for initialization, read lock for Get().
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the configuration used when no file overrides a key.
// The sampling values mirror the headset script: one tick per second,
// recompute every second, 1° threshold, 5 second window.
func Default() *Config {
	return &Config{
		MQTTBroker:           "tcp://localhost:1883",
		MQTTClientIDSampler:  "head-sync-sampler",
		MQTTClientIDLogger:   "head-sync-logger",
		MQTTClientIDConsole:  "head-sync-console",
		MQTTClientIDWeb:      "head-sync-web",
		MQTTClientIDAnchor:   "head-sync-anchor",
		MQTTClientIDBehavior: "head-sync-behavior",
		MQTTClientIDBodies:   "head-sync-bodies",
		MQTTPublishTimeout:   500 * time.Millisecond,

		TopicHeadPose:             "ToGH_HeadPose",
		TopicStationaryPercentage: "ToGH_StationaryPercentage",
		TopicAnchorPose:           "xr/anchor/center_eye",

		AnchorSource:     AnchorSourceMock,
		AnchorStaleAfter: 500 * time.Millisecond,

		TickPeriod:               time.Second,
		RecomputeInterval:        time.Second,
		StationaryAngleThreshold: 1.0,
		RetentionWindow:          5 * time.Second,
		EmptyWindowPolicy:        EmptyWindowSkip,

		FrameInterval: 16 * time.Millisecond,

		TopicBodies:             "zed/bodies",
		TopicInteraction:        "ToGH_Interaction",
		TopicPosture:            "ToGH_Posture",
		InteractionFacing:       FacingRoot,
		InteractionMaxAngle:     120,
		InteractionMinDistance:  1.0,
		PostureMaxShoulderAngle: 30,
		BodiesInterval:          100 * time.Millisecond,

		WebServerPort:  8080,
		WebHistorySize: 60,
	}
}

// Load reads the configuration file on top of Default() and returns the result.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads configPath when it exists and falls back to Default()
// when it does not. Any other error is returned.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_SAMPLER":
		c.MQTTClientIDSampler = value
	case "MQTT_CLIENT_ID_LOGGER":
		c.MQTTClientIDLogger = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_ANCHOR":
		c.MQTTClientIDAnchor = value
	case "MQTT_CLIENT_ID_BEHAVIOR":
		c.MQTTClientIDBehavior = value
	case "MQTT_CLIENT_ID_BODIES":
		c.MQTTClientIDBodies = value
	case "MQTT_PUBLISH_TIMEOUT":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.MQTTPublishTimeout = d

	// Topics
	case "TOPIC_HEAD_POSE":
		c.TopicHeadPose = value
	case "TOPIC_STATIONARY_PERCENTAGE":
		c.TopicStationaryPercentage = value
	case "TOPIC_ANCHOR_POSE":
		c.TopicAnchorPose = value

	// Anchor
	case "ANCHOR_SOURCE":
		if value != AnchorSourceMock && value != AnchorSourceMQTT {
			return fmt.Errorf("ANCHOR_SOURCE must be %q or %q, got %q", AnchorSourceMock, AnchorSourceMQTT, value)
		}
		c.AnchorSource = value
	case "ANCHOR_STALE_AFTER":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.AnchorStaleAfter = d

	// Sampling
	case "TICK_PERIOD":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.TickPeriod = d
	case "RECOMPUTE_INTERVAL":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.RecomputeInterval = d
	case "STATIONARY_ANGLE_THRESHOLD":
		deg, err := parseDegrees(key, value)
		if err != nil {
			return err
		}
		c.StationaryAngleThreshold = deg
	case "RETENTION_WINDOW":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.RetentionWindow = d
	case "EMPTY_WINDOW_POLICY":
		if value != EmptyWindowSkip && value != EmptyWindowZero {
			return fmt.Errorf("EMPTY_WINDOW_POLICY must be %q or %q, got %q", EmptyWindowSkip, EmptyWindowZero, value)
		}
		c.EmptyWindowPolicy = value

	// Pose logger
	case "FRAME_INTERVAL":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.FrameInterval = d

	// Behavior
	case "TOPIC_BODIES":
		c.TopicBodies = value
	case "TOPIC_INTERACTION":
		c.TopicInteraction = value
	case "TOPIC_POSTURE":
		c.TopicPosture = value
	case "INTERACTION_FACING":
		if value != FacingRoot && value != FacingHead {
			return fmt.Errorf("INTERACTION_FACING must be %q or %q, got %q", FacingRoot, FacingHead, value)
		}
		c.InteractionFacing = value
	case "INTERACTION_MAX_ANGLE":
		deg, err := parseDegrees(key, value)
		if err != nil {
			return err
		}
		c.InteractionMaxAngle = deg
	case "INTERACTION_MIN_DISTANCE":
		m, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid INTERACTION_MIN_DISTANCE %q: %w", value, err)
		}
		if m < 0 {
			return fmt.Errorf("INTERACTION_MIN_DISTANCE must not be negative, got %g", m)
		}
		c.InteractionMinDistance = m
	case "POSTURE_MAX_SHOULDER_ANGLE":
		deg, err := parseDegrees(key, value)
		if err != nil {
			return err
		}
		c.PostureMaxShoulderAngle = deg
	case "BODIES_INTERVAL":
		d, err := parseMillis(key, value)
		if err != nil {
			return err
		}
		c.BodiesInterval = d

	// Logging
	case "LOG_TICKS":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_TICKS %q: %w", value, err)
		}
		c.LogTicks = b

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("WEB_SERVER_PORT must be 1-65535, got %d", port)
		}
		c.WebServerPort = port
	case "WEB_HISTORY_SIZE":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_HISTORY_SIZE %q: %w", value, err)
		}
		c.WebHistorySize = n

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// parseMillis parses a positive integer number of milliseconds.
func parseMillis(key, value string) (time.Duration, error) {
	ms, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ms <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of milliseconds, got %d", key, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// parseDegrees parses an angle in degrees within 0-180.
func parseDegrees(key, value string) (float64, error) {
	deg, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if deg < 0 || deg > 180 {
		return 0, fmt.Errorf("%s must be 0-180 degrees, got %g", key, deg)
	}
	return deg, nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicHeadPose == "" {
		return fmt.Errorf("TOPIC_HEAD_POSE is required")
	}
	if c.TopicStationaryPercentage == "" {
		return fmt.Errorf("TOPIC_STATIONARY_PERCENTAGE is required")
	}
	if c.AnchorSource == AnchorSourceMQTT && c.TopicAnchorPose == "" {
		return fmt.Errorf("TOPIC_ANCHOR_POSE is required when ANCHOR_SOURCE=mqtt")
	}
	if c.RetentionWindow < c.TickPeriod {
		return fmt.Errorf("RETENTION_WINDOW (%s) must not be shorter than TICK_PERIOD (%s)", c.RetentionWindow, c.TickPeriod)
	}
	if c.TopicInteraction == "" || c.TopicPosture == "" {
		return fmt.Errorf("TOPIC_INTERACTION and TOPIC_POSTURE are required")
	}
	if c.WebHistorySize <= 0 {
		return fmt.Errorf("WEB_HISTORY_SIZE must be positive, got %d", c.WebHistorySize)
	}
	return nil
}

// InitGlobal initializes the global configuration from file, falling back to
// defaults when the file does not exist. Only the first call has any effect.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = LoadOrDefault(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
