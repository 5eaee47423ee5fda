// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/head_sync/internal/bridge"
)

func percentPayload(t *testing.T, v float64) []byte {
	t.Helper()
	b, err := json.Marshal(bridge.StationaryPercentageMessage{StationaryPercentage: v})
	require.NoError(t, err)
	return b
}

func newTestServer(t *testing.T, d *dashboard) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	d.routes(mux, t.TempDir())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDashboard_SummaryEmpty(t *testing.T) {
	d := newDashboard(4)
	_, ok := d.summary()
	assert.False(t, ok)
}

func TestDashboard_SummarySingleValue(t *testing.T) {
	d := newDashboard(4)
	require.NoError(t, d.handleStationaryPercentage(percentPayload(t, 80)))

	s, ok := d.summary()
	require.True(t, ok)
	assert.Equal(t, StationarySummary{Count: 1, Mean: 80, StdDev: 0, Min: 80, Max: 80}, s)
}

func TestDashboard_HistoryIsBounded(t *testing.T) {
	d := newDashboard(3)
	for _, v := range []float64{0, 100, 50, 60, 70} {
		require.NoError(t, d.handleStationaryPercentage(percentPayload(t, v)))
	}

	s, ok := d.summary()
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 50.0, s.Min)
	assert.Equal(t, 70.0, s.Max)
	assert.InDelta(t, 60.0, s.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.StdDev, 1e-9) // sample stddev of 50, 60, 70
}

func TestDashboard_RejectsMalformedPayloads(t *testing.T) {
	d := newDashboard(3)
	assert.Error(t, d.handleHeadPose([]byte("{")))
	assert.Error(t, d.handleStationaryPercentage([]byte("nope")))

	_, ok := d.summary()
	assert.False(t, ok)
}

func TestDashboard_APIEndpoints(t *testing.T) {
	d := newDashboard(10)
	srv := newTestServer(t, d)

	for _, path := range []string{"/api/head_pose", "/api/stationary", "/api/stationary/summary"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}

	pose := bridge.HeadPoseMessage{
		HeadPosition: bridge.Point3{X: 0.1, Y: 0.2, Z: 1.65},
		HeadRotation: bridge.Point3{X: 10, Y: 350, Z: 0},
	}
	b, err := json.Marshal(pose)
	require.NoError(t, err)
	require.NoError(t, d.handleHeadPose(b))
	require.NoError(t, d.handleStationaryPercentage(percentPayload(t, 40)))
	require.NoError(t, d.handleStationaryPercentage(percentPayload(t, 60)))

	var gotPose bridge.HeadPoseMessage
	getJSON(t, srv.URL+"/api/head_pose", &gotPose)
	assert.Equal(t, pose, gotPose)

	var gotPercent bridge.StationaryPercentageMessage
	getJSON(t, srv.URL+"/api/stationary", &gotPercent)
	assert.Equal(t, 60.0, gotPercent.StationaryPercentage)

	var summary StationarySummary
	getJSON(t, srv.URL+"/api/stationary/summary", &summary)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 50.0, summary.Mean, 1e-9)
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestDashboard_WebsocketStream(t *testing.T) {
	d := newDashboard(10)
	srv := newTestServer(t, d)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		d.clientsMu.Lock()
		defer d.clientsMu.Unlock()
		return len(d.clients) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, d.handleStationaryPercentage(percentPayload(t, 75)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, bridge.ChannelStationaryPercentage, msg.Channel)

	var payload bridge.StationaryPercentageMessage
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, 75.0, payload.StationaryPercentage)

	conn.Close()
	assert.Eventually(t, func() bool {
		d.clientsMu.Lock()
		defer d.clientsMu.Unlock()
		return len(d.clients) == 0
	}, time.Second, 5*time.Millisecond)
}

func clientCount(d *dashboard) int {
	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()
	return len(d.clients)
}

func TestDashboard_StalledClientIsDropped(t *testing.T) {
	d := newDashboard(10)
	d.writeTimeout = 50 * time.Millisecond
	srv := newTestServer(t, d)

	// this client never reads, so the server's socket buffers fill up
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return clientCount(d) == 1 }, time.Second, 5*time.Millisecond)

	big := []byte(`"` + strings.Repeat("x", 1<<20) + `"`)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 256 && clientCount(d) > 0; i++ {
			d.broadcast(bridge.ChannelHeadPose, big)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}
	assert.Equal(t, 0, clientCount(d))
}
