// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"sync"

	"github.com/relabs-tech/head_sync/internal/behavior"
	"github.com/relabs-tech/head_sync/internal/orientation"
)

// Recorder is an in-memory Sink that keeps everything it is sent.
type Recorder struct {
	mu          sync.Mutex
	poses       []orientation.Pose
	percentages []float64

	interactions []behavior.Interaction
	postures     [][]behavior.PostureResult
}

func (r *Recorder) SendPose(p orientation.Pose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poses = append(r.poses, p)
	return nil
}

func (r *Recorder) SendStationaryPercentage(value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percentages = append(r.percentages, value)
	return nil
}

func (r *Recorder) SendInteraction(i behavior.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, i)
	return nil
}

func (r *Recorder) SendPostures(results []behavior.PostureResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postures = append(r.postures, append([]behavior.PostureResult(nil), results...))
	return nil
}

// Poses returns a copy of the recorded poses.
func (r *Recorder) Poses() []orientation.Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orientation.Pose, len(r.poses))
	copy(out, r.poses)
	return out
}

// Percentages returns a copy of the recorded percentages.
func (r *Recorder) Percentages() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.percentages))
	copy(out, r.percentages)
	return out
}

// Interactions returns a copy of the recorded interaction states.
func (r *Recorder) Interactions() []behavior.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]behavior.Interaction, len(r.interactions))
	copy(out, r.interactions)
	return out
}

// Postures returns a copy of the recorded posture frames.
func (r *Recorder) Postures() [][]behavior.PostureResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]behavior.PostureResult, len(r.postures))
	copy(out, r.postures)
	return out
}
