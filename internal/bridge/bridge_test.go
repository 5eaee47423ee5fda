// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/mqtttest"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

func samplePose() orientation.Pose {
	return orientation.Pose{
		Position: mgl64.Vec3{0.1, 1.6, -0.3},
		Rotation: orientation.FromEulerAngles(10, 45, 0),
	}
}

func TestNewHeadPoseMessage_HostConvention(t *testing.T) {
	m := NewHeadPoseMessage(samplePose())

	// Y and Z swapped
	assert.InDelta(t, 0.1, m.HeadPosition.X, 1e-12)
	assert.InDelta(t, -0.3, m.HeadPosition.Y, 1e-12)
	assert.InDelta(t, 1.6, m.HeadPosition.Z, 1e-12)

	assert.InDelta(t, 10, m.HeadRotation.X, 1e-6)
	assert.InDelta(t, 45, m.HeadRotation.Y, 1e-6)
	assert.InDelta(t, 0, m.HeadRotation.Z, 1e-6)
}

func TestMQTTSink_PublishesNamedChannels(t *testing.T) {
	client := mqtttest.NewClient()
	sink := NewMQTTSink(client, "", "", 0)

	require.NoError(t, sink.SendPose(samplePose()))
	require.NoError(t, sink.SendStationaryPercentage(80))

	pubs := client.Published()
	require.Len(t, pubs, 2)

	assert.Equal(t, ChannelHeadPose, pubs[0].Topic)
	assert.False(t, pubs[0].Retained)
	var pose map[string]map[string]float64
	require.NoError(t, json.Unmarshal(pubs[0].Payload, &pose))
	assert.Contains(t, pose, "HeadPosition")
	assert.Contains(t, pose, "HeadRotation")
	assert.InDelta(t, 1.6, pose["HeadPosition"]["Z"], 1e-12)

	assert.Equal(t, ChannelStationaryPercentage, pubs[1].Topic)
	assert.JSONEq(t, `{"StationaryPercentage":80}`, string(pubs[1].Payload))
}

func TestMQTTSink_CustomTopics(t *testing.T) {
	client := mqtttest.NewClient()
	sink := NewMQTTSink(client, "gh/pose", "gh/stationary", 0)

	require.NoError(t, sink.SendStationaryPercentage(12.5))
	assert.Equal(t, "gh/stationary", client.Published()[0].Topic)
}

func TestMQTTSink_Errors(t *testing.T) {
	t.Run("connection closed", func(t *testing.T) {
		client := mqtttest.NewClient()
		client.Closed = true
		err := NewMQTTSink(client, "", "", 0).SendPose(samplePose())
		assert.ErrorIs(t, err, ErrSinkUnavailable)
		assert.Empty(t, client.Published())
	})

	t.Run("timeout", func(t *testing.T) {
		client := mqtttest.NewClient()
		client.PubToken = &mqtttest.Token{Timeout: true}
		err := NewMQTTSink(client, "", "", 0).SendStationaryPercentage(50)
		assert.ErrorIs(t, err, ErrSinkUnavailable)
	})

	t.Run("publish error", func(t *testing.T) {
		client := mqtttest.NewClient()
		boom := errors.New("broker said no")
		client.PubToken = &mqtttest.Token{Err: boom}
		err := NewMQTTSink(client, "", "", 0).SendStationaryPercentage(50)
		assert.ErrorIs(t, err, boom)
	})
}

type failingSink struct{ err error }

func (f failingSink) SendPose(orientation.Pose) error        { return f.err }
func (f failingSink) SendStationaryPercentage(float64) error { return f.err }

func TestFanout_AttemptsAllSinks(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	down := failingSink{err: ErrSinkUnavailable}
	f := Fanout{first, down, second}

	err := f.SendPose(samplePose())
	assert.ErrorIs(t, err, ErrSinkUnavailable)
	err = f.SendStationaryPercentage(25)
	assert.ErrorIs(t, err, ErrSinkUnavailable)

	assert.Len(t, first.Poses(), 1)
	assert.Len(t, second.Poses(), 1)
	assert.Equal(t, []float64{25}, second.Percentages())

	assert.NoError(t, Fanout{first}.SendStationaryPercentage(1))
}

func TestConsoleSink_Lines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleSink(&buf)

	require.NoError(t, c.SendPose(samplePose()))
	require.NoError(t, c.SendStationaryPercentage(80))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[POSE]"))
	assert.Contains(t, lines[0], "RY= 45.00")
	assert.Equal(t, "[STAT]  stationary= 80.00%", lines[1])
}

func TestBehaviorMQTTSink_PublishesChannels(t *testing.T) {
	client := mqtttest.NewClient()
	sink := NewBehaviorMQTTSink(client, "", "", 0)

	require.NoError(t, sink.SendInteraction(behavior.Interacting))
	require.NoError(t, sink.SendPostures([]behavior.PostureResult{{ID: 3, Posture: behavior.Stiff}, {ID: 7, Posture: behavior.Relaxed}}))
	require.NoError(t, sink.SendPostures(nil))

	pubs := client.Published()
	require.Len(t, pubs, 3)
	assert.Equal(t, ChannelInteraction, pubs[0].Topic)
	assert.JSONEq(t, `{"Interaction":1}`, string(pubs[0].Payload))
	assert.Equal(t, ChannelPosture, pubs[1].Topic)
	assert.JSONEq(t, `{"Postures":[{"ID":3,"Posture":1},{"ID":7,"Posture":0}]}`, string(pubs[1].Payload))
	assert.JSONEq(t, `{"Postures":[]}`, string(pubs[2].Payload))
}

func TestBehaviorMQTTSink_ClosedConnection(t *testing.T) {
	client := mqtttest.NewClient()
	client.Closed = true
	sink := NewBehaviorMQTTSink(client, "gh/interaction", "gh/posture", 0)

	assert.ErrorIs(t, sink.SendInteraction(behavior.NotInteracting), ErrSinkUnavailable)
	assert.Empty(t, client.Published())
}

func TestConsoleSink_BehaviorLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleSink(&buf)

	require.NoError(t, c.SendInteraction(behavior.Interacting))
	require.NoError(t, c.SendPostures([]behavior.PostureResult{{ID: 2, Posture: behavior.Stiff}}))
	require.NoError(t, c.SendPostures(nil))

	assert.Equal(t, "[INTR]  interaction=1\n[POST]  id=2 posture=1\n[POST]  none\n", buf.String())
}
