// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package behavior

import (
	"log"
)

// Sink receives the per-frame classifications.
type Sink interface {
	SendInteraction(i Interaction) error
	SendPostures(results []PostureResult) error
}

// Config groups the classifier thresholds.
type Config struct {
	Interaction InteractionConfig
	Posture     PostureConfig
}

// Analyzer runs both classifiers over body tracker frames and forwards the
// results.
type Analyzer struct {
	cfg  Config
	sink Sink

	// LogResults logs every classification.
	LogResults bool
}

func NewAnalyzer(cfg Config, sink Sink) *Analyzer {
	return &Analyzer{cfg: cfg, sink: sink}
}

// OnFrame classifies one frame. A frame whose interaction cannot be decided
// still forwards postures. Sink failures are logged and dropped.
func (a *Analyzer) OnFrame(bodies []Body) {
	interaction, err := CheckInteraction(bodies, a.cfg.Interaction)
	if err != nil {
		log.Printf("behavior: interaction skipped: %v", err)
	} else {
		if a.LogResults {
			log.Printf("behavior: bodies=%d interaction=%d", len(bodies), interaction)
		}
		if err := a.sink.SendInteraction(interaction); err != nil {
			log.Printf("behavior: forward interaction: %v", err)
		}
	}

	postures := ClassifyPostures(bodies, a.cfg.Posture)
	if a.LogResults {
		log.Printf("behavior: postures=%v", postures)
	}
	if err := a.sink.SendPostures(postures); err != nil {
		log.Printf("behavior: forward postures: %v", err)
	}
}
