// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/relabs-tech/head_sync/internal/bridge"
)

// StationarySummary describes the recent stationary percentage history.
type StationarySummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// streamMessage is what /ws clients receive: the channel name and the raw
// payload as published to the host.
type streamMessage struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

// wsWriteTimeout bounds each websocket write so one stalled client cannot
// hold up delivery of the MQTT channels.
const wsWriteTimeout = time.Second

// dashboard keeps the latest value of each channel plus a bounded history of
// stationary percentages, and fans every update out to websocket clients.
type dashboard struct {
	mu          sync.RWMutex
	pose        bridge.HeadPoseMessage
	havePose    bool
	percent     bridge.StationaryPercentageMessage
	havePercent bool
	history     []float64
	historySize int

	writeTimeout time.Duration
	clientsMu    sync.Mutex
	clients      map[*websocket.Conn]struct{}
}

func newDashboard(historySize int) *dashboard {
	return &dashboard{
		historySize:  historySize,
		history:      make([]float64, 0, historySize),
		writeTimeout: wsWriteTimeout,
		clients:      make(map[*websocket.Conn]struct{}),
	}
}

func (d *dashboard) handleHeadPose(payload []byte) error {
	var m bridge.HeadPoseMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return err
	}
	d.mu.Lock()
	d.pose = m
	d.havePose = true
	d.mu.Unlock()

	d.broadcast(bridge.ChannelHeadPose, payload)
	return nil
}

func (d *dashboard) handleStationaryPercentage(payload []byte) error {
	var m bridge.StationaryPercentageMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return err
	}
	d.mu.Lock()
	d.percent = m
	d.havePercent = true
	if len(d.history) == d.historySize {
		copy(d.history, d.history[1:])
		d.history = d.history[:len(d.history)-1]
	}
	d.history = append(d.history, m.StationaryPercentage)
	d.mu.Unlock()

	d.broadcast(bridge.ChannelStationaryPercentage, payload)
	return nil
}

// summary returns statistics over the history, or false when it is empty.
func (d *dashboard) summary() (StationarySummary, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.history) == 0 {
		return StationarySummary{}, false
	}

	s := StationarySummary{
		Count: len(d.history),
		Min:   floats.Min(d.history),
		Max:   floats.Max(d.history),
	}
	if len(d.history) == 1 {
		s.Mean = d.history[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(d.history, nil)
	}
	return s, true
}

func (d *dashboard) addClient(conn *websocket.Conn) {
	d.clientsMu.Lock()
	d.clients[conn] = struct{}{}
	d.clientsMu.Unlock()
}

func (d *dashboard) removeClient(conn *websocket.Conn) {
	d.clientsMu.Lock()
	delete(d.clients, conn)
	d.clientsMu.Unlock()
	conn.Close()
}

// broadcast writes one stream message to every client, dropping clients
// whose write fails or misses its deadline.
func (d *dashboard) broadcast(channel string, payload []byte) {
	msg := streamMessage{Channel: channel, Payload: json.RawMessage(payload)}

	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()
	for conn := range d.clients {
		err := conn.SetWriteDeadline(time.Now().Add(d.writeTimeout))
		if err == nil {
			err = conn.WriteJSON(msg)
		}
		if err != nil {
			log.Printf("web: websocket write error, dropping client: %v", err)
			delete(d.clients, conn)
			conn.Close()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dashboard
	},
}

// routes registers the API, websocket and static handlers on mux.
func (d *dashboard) routes(mux *http.ServeMux, staticDir string) {
	mux.HandleFunc("/api/head_pose", func(w http.ResponseWriter, r *http.Request) {
		d.mu.RLock()
		m, ok := d.pose, d.havePose
		d.mu.RUnlock()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, m)
	})

	mux.HandleFunc("/api/stationary", func(w http.ResponseWriter, r *http.Request) {
		d.mu.RLock()
		m, ok := d.percent, d.havePercent
		d.mu.RUnlock()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, m)
	})

	mux.HandleFunc("/api/stationary/summary", func(w http.ResponseWriter, r *http.Request) {
		s, ok := d.summary()
		if !ok {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, s)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		d.addClient(conn)
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)

		// Reads only detect the client going away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		d.removeClient(conn)
		log.Printf("web: websocket client %s disconnected", r.RemoteAddr)
	})

	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}
