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

package anim

import (
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/display"
)

// MarqueeStep is the cadence of the horizontal scroll.
const MarqueeStep = 35 * time.Millisecond

// Marquee scrolls text right to left until it has fully exited the panel.
// The first frame plants the text at StartX; every following frame shifts
// it one pixel left. The panel is not cleared first, so static content such
// as the header icon stays up while the text scrolls past it.
type Marquee struct {
	Text   string
	Font   display.Font
	StartX int
	TopY   int

	started bool
}

// NewMarquee builds a marquee that enters from the right edge of a panel of
// the given width, vertically positioned for the font.
func NewMarquee(text string, font display.Font, panelWidth int) *Marquee {
	return &Marquee{
		Text:   text,
		Font:   font,
		StartX: panelWidth,
		TopY:   font.BaselineY(),
	}
}

func (m *Marquee) Step(s display.Surface) (time.Duration, bool) {
	if !m.started {
		m.started = true
		s.StartScroll(m.Text, m.Font, m.StartX, m.TopY)
		return MarqueeStep, false
	}

	if s.StepScroll(-1) {
		return 0, true
	}
	return MarqueeStep, false
}
