// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "head_sync_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_MatchesHeadsetScript(t *testing.T) {
	cfg := Default()

	assert.Equal(t, time.Second, cfg.TickPeriod)
	assert.Equal(t, time.Second, cfg.RecomputeInterval)
	assert.Equal(t, 1.0, cfg.StationaryAngleThreshold)
	assert.Equal(t, 5*time.Second, cfg.RetentionWindow)
	assert.Equal(t, "ToGH_HeadPose", cfg.TopicHeadPose)
	assert.Equal(t, "ToGH_StationaryPercentage", cfg.TopicStationaryPercentage)
	assert.Equal(t, EmptyWindowSkip, cfg.EmptyWindowPolicy)
	assert.Equal(t, FacingRoot, cfg.InteractionFacing)
	assert.Equal(t, 120.0, cfg.InteractionMaxAngle)
	assert.Equal(t, 1.0, cfg.InteractionMinDistance)
	assert.Equal(t, 30.0, cfg.PostureMaxShoulderAngle)
	assert.NoError(t, cfg.validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
# head sync
MQTT_BROKER = tcp://broker.local:1883
ANCHOR_SOURCE=mqtt
TOPIC_ANCHOR_POSE=quest/center_eye
TICK_PERIOD=33
RECOMPUTE_INTERVAL=1000
STATIONARY_ANGLE_THRESHOLD=0.5
RETENTION_WINDOW=3000
EMPTY_WINDOW_POLICY=zero
LOG_TICKS=true
WEB_SERVER_PORT=9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tcp://broker.local:1883", cfg.MQTTBroker)
	assert.Equal(t, AnchorSourceMQTT, cfg.AnchorSource)
	assert.Equal(t, "quest/center_eye", cfg.TopicAnchorPose)
	assert.Equal(t, 33*time.Millisecond, cfg.TickPeriod)
	assert.Equal(t, 0.5, cfg.StationaryAngleThreshold)
	assert.Equal(t, 3*time.Second, cfg.RetentionWindow)
	assert.Equal(t, EmptyWindowZero, cfg.EmptyWindowPolicy)
	assert.True(t, cfg.LogTicks)
	assert.Equal(t, 9090, cfg.WebServerPort)

	// untouched keys keep their defaults
	assert.Equal(t, "ToGH_HeadPose", cfg.TopicHeadPose)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
}

func TestLoad_BehaviorKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
TOPIC_BODIES=tracker/bodies
INTERACTION_FACING=head
INTERACTION_MAX_ANGLE=100
INTERACTION_MIN_DISTANCE=1.5
POSTURE_MAX_SHOULDER_ANGLE=25
BODIES_INTERVAL=50
`))
	require.NoError(t, err)

	assert.Equal(t, "tracker/bodies", cfg.TopicBodies)
	assert.Equal(t, FacingHead, cfg.InteractionFacing)
	assert.Equal(t, 100.0, cfg.InteractionMaxAngle)
	assert.Equal(t, 1.5, cfg.InteractionMinDistance)
	assert.Equal(t, 25.0, cfg.PostureMaxShoulderAngle)
	assert.Equal(t, 50*time.Millisecond, cfg.BodiesInterval)
	assert.Equal(t, "ToGH_Interaction", cfg.TopicInteraction)
	assert.Equal(t, "ToGH_Posture", cfg.TopicPosture)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing equals", "MQTT_BROKER\n"},
		{"unknown key", "NOPE=1\n"},
		{"bad duration", "TICK_PERIOD=fast\n"},
		{"zero duration", "TICK_PERIOD=0\n"},
		{"threshold out of range", "STATIONARY_ANGLE_THRESHOLD=200\n"},
		{"bad anchor source", "ANCHOR_SOURCE=camera\n"},
		{"bad policy", "EMPTY_WINDOW_POLICY=nan\n"},
		{"window shorter than tick", "TICK_PERIOD=2000\nRETENTION_WINDOW=1000\n"},
		{"empty broker", "MQTT_BROKER=\n"},
		{"bad port", "WEB_SERVER_PORT=70000\n"},
		{"bad facing", "INTERACTION_FACING=eyes\n"},
		{"facing angle out of range", "INTERACTION_MAX_ANGLE=-1\n"},
		{"negative distance", "INTERACTION_MIN_DISTANCE=-0.5\n"},
		{"empty posture topic", "TOPIC_POSTURE=\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
