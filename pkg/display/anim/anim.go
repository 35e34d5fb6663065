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

// Package anim implements the board's two transition primitives, the
// horizontal marquee and the vertical slide, as explicit frame generators.
// Each Step draws one complete frame onto the surface; the Player decides
// whether to actually sleep between frames (production) or fast-forward
// (tests). Once started an animation always runs to its natural end; there
// is no cancellation mid-flight.
package anim

import (
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/display"
	"github.com/jonboulle/clockwork"
)

// Animation produces successive fully drawn frames. Step draws the next
// frame and returns the delay to hold it, plus whether the animation has
// completed. Step must not be called again after done.
type Animation interface {
	Step(s display.Surface) (delay time.Duration, done bool)
}

// Player runs animations to completion in real time. It blocks the calling
// goroutine for the whole run, matching the board's cooperative model.
type Player struct {
	clock clockwork.Clock
}

func NewPlayer(clock clockwork.Clock) *Player {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Player{clock: clock}
}

// Run steps a through all of its frames, sleeping each frame's delay.
func (p *Player) Run(s display.Surface, a Animation) {
	for {
		delay, done := a.Step(s)
		if done {
			return
		}
		p.clock.Sleep(delay)
	}
}
