// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package headtrack holds the per-tick observers of the head anchor: the
// sampler that classifies ticks and forwards the pose, and the frame logger.
package headtrack

import (
	"errors"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/relabs-tech/head_sync/internal/bridge"
	"github.com/relabs-tech/head_sync/internal/orientation"
	"github.com/relabs-tech/head_sync/internal/stationary"
)

// angleEpsilon absorbs float noise so a step of exactly the threshold
// counts as stationary.
const angleEpsilon = 1e-9

// SamplerConfig holds the fixed sampling parameters.
type SamplerConfig struct {
	StationaryAngleThreshold float64 // degrees
	RecomputeInterval        time.Duration
	LogTicks                 bool
}

// Sampler runs once per fixed tick. It classifies the tick as stationary
// when the head turned by no more than the threshold since the previous
// tick, records the classification, runs the window estimator on its
// schedule and forwards the pose.
type Sampler struct {
	cfg       SamplerConfig
	src       orientation.Source
	samples   *stationary.Log
	estimator *stationary.Estimator
	sink      bridge.PoseSink

	prevRotation  mgl64.Quat
	havePrevious  bool
	lastRecompute time.Duration
}

// NewSampler wires a sampler. The estimator must be built over l.
func NewSampler(cfg SamplerConfig, src orientation.Source, l *stationary.Log, est *stationary.Estimator, sink bridge.PoseSink) *Sampler {
	return &Sampler{
		cfg:       cfg,
		src:       src,
		samples:   l,
		estimator: est,
		sink:      sink,
	}
}

// OnTick processes the tick at fixed-step time now.
func (s *Sampler) OnTick(now time.Duration) {
	pose, err := s.src.Next()
	haveAnchor := err == nil
	if err != nil && !errors.Is(err, orientation.ErrAnchorUnavailable) {
		log.Printf("sampler: anchor read error: %v", err)
	}

	if haveAnchor && s.havePrevious {
		angle := orientation.AngleBetween(s.prevRotation, pose.Rotation)
		still := angle <= s.cfg.StationaryAngleThreshold+angleEpsilon
		s.samples.Append(stationary.Sample{Time: now, Stationary: still})

		if s.cfg.LogTicks {
			log.Printf("sampler: t=%s angle=%.3f° stationary=%t", now, angle, still)
		}
	}

	// the estimator keeps its schedule even while the anchor is missing
	if now-s.lastRecompute >= s.cfg.RecomputeInterval {
		s.estimator.Run(now)
		s.lastRecompute = now
	}

	if !haveAnchor {
		return
	}

	s.prevRotation = pose.Rotation
	s.havePrevious = true

	if err := s.sink.SendPose(pose); err != nil {
		log.Printf("sampler: forward head pose: %v", err)
	}
}
