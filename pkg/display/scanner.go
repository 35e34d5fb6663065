// Tabellone Core
// Copyright (c) 2026 The Tabellone Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Tabellone Core.
//
// Tabellone Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tabellone Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tabellone Core.  If not, see <http://www.gnu.org/licenses/>.

package display

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Panel is the physical output device. Paint receives a consistent frame
// snapshot and rasterizes it; it must not call back into the Buffer.
type Panel interface {
	Paint(frame Frame)
}

// Scanner is the stand-in for the hardware refresh interrupt: an independent
// periodic task that samples the shared Buffer and paints it to the Panel.
// It never blocks the logic thread and the logic thread never waits on it.
type Scanner struct {
	clock  clockwork.Clock
	buf    *Buffer
	panel  Panel
	period time.Duration
	done   chan struct{}
}

func NewScanner(buf *Buffer, panel Panel, hz int, clock clockwork.Clock) *Scanner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scanner{
		buf:    buf,
		panel:  panel,
		period: time.Second / time.Duration(hz),
		clock:  clock,
		done:   make(chan struct{}),
	}
}

// Start runs the scan loop until ctx is cancelled.
func (s *Scanner) Start(ctx context.Context) {
	go s.run(ctx)
}

// Wait blocks until the scan loop has exited.
func (s *Scanner) Wait() {
	<-s.done
}

func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)

	ticker := s.clock.NewTicker(s.period)
	defer ticker.Stop()

	var lastGen uint64
	painted := false

	for {
		select {
		case <-ticker.Chan():
			frame := s.buf.Snapshot()
			if painted && frame.Gen == lastGen {
				continue
			}
			s.panel.Paint(frame)
			lastGen = frame.Gen
			painted = true
		case <-ctx.Done():
			log.Debug().Msg("display scanner stopped")
			return
		}
	}
}
