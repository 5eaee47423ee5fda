// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bridge

import (
	"errors"

	"github.com/relabs-tech/head_sync/internal/orientation"
)

// ErrSinkUnavailable means the host side of a channel is not reachable.
// Senders log it and carry on.
var ErrSinkUnavailable = errors.New("host sink unavailable")

// PoseSink receives the raw head pose every tick.
type PoseSink interface {
	SendPose(p orientation.Pose) error
}

// PercentageSink receives the stationary percentage.
type PercentageSink interface {
	SendStationaryPercentage(value float64) error
}

// Sink carries both named channels.
type Sink interface {
	PoseSink
	PercentageSink
}

// Fanout forwards to every sink in order. All sinks are attempted; their
// errors are joined.
type Fanout []Sink

func (f Fanout) SendPose(p orientation.Pose) error {
	var errs []error
	for _, s := range f {
		if err := s.SendPose(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) SendStationaryPercentage(value float64) error {
	var errs []error
	for _, s := range f {
		if err := s.SendStationaryPercentage(value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
