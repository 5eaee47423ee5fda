// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/config"
	"github.com/relabs-tech/head_sync/internal/mqtttest"
)

func TestNewAnalyzer_RejectsBadFacing(t *testing.T) {
	cfg := config.Default()
	cfg.InteractionFacing = "eyes"
	_, err := newAnalyzer(cfg, &bridge.Recorder{})
	assert.Error(t, err)
}

func TestBodiesPipeline_ProducerToAnalyzer(t *testing.T) {
	cfg := config.Default()
	client := mqtttest.NewClient()
	rec := &bridge.Recorder{}

	analyzer, err := newAnalyzer(cfg, rec)
	require.NoError(t, err)
	require.NoError(t, subscribe(client, cfg.TopicBodies, bodiesHandler(analyzer)))

	scene := behavior.NewMockScene()
	require.NoError(t, publishBodies(client, cfg.TopicBodies, scene.Next()))

	pubs := client.Published()
	require.Len(t, pubs, 1)
	require.True(t, client.Deliver(cfg.TopicBodies, pubs[0].Payload))

	// the mock scene starts face to face with arms down
	assert.Equal(t, []behavior.Interaction{behavior.Interacting}, rec.Interactions())
	assert.Equal(t, [][]behavior.PostureResult{{{ID: 1, Posture: behavior.Stiff}, {ID: 2, Posture: behavior.Stiff}}}, rec.Postures())
}

func TestBodiesHandler_DropsMalformedFrames(t *testing.T) {
	cfg := config.Default()
	client := mqtttest.NewClient()
	rec := &bridge.Recorder{}

	analyzer, err := newAnalyzer(cfg, rec)
	require.NoError(t, err)
	require.NoError(t, subscribe(client, cfg.TopicBodies, bodiesHandler(analyzer)))

	require.True(t, client.Deliver(cfg.TopicBodies, []byte("not json")))
	assert.Empty(t, rec.Interactions())
	assert.Empty(t, rec.Postures())
}

func TestBehaviorMQTTSink_FromConfigTopics(t *testing.T) {
	cfg := config.Default()
	client := mqtttest.NewClient()
	analyzer, err := newAnalyzer(cfg, bridge.NewBehaviorMQTTSink(client, cfg.TopicInteraction, cfg.TopicPosture, time.Second))
	require.NoError(t, err)

	analyzer.OnFrame(nil)

	pubs := client.Published()
	require.Len(t, pubs, 2)
	assert.Equal(t, "ToGH_Interaction", pubs[0].Topic)
	assert.JSONEq(t, `{"Interaction":0}`, string(pubs[0].Payload))
	assert.Equal(t, "ToGH_Posture", pubs[1].Topic)
	assert.JSONEq(t, `{"Postures":[]}`, string(pubs[1].Payload))
}
