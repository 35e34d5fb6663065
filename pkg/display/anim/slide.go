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

const (
	// ScreenHeight is the pixel height of the panel row. A slide moves
	// content by one panel height, one pixel per frame, inclusive of both
	// endpoints: 17 frames total.
	ScreenHeight = 16

	// SlideStep is the cadence of the generic single-line slide.
	SlideStep = 25 * time.Millisecond
	// RecordSlideStep is the cadence of the two-line record slide.
	RecordSlideStep = 20 * time.Millisecond

	// recordTimeX indents the time/delay line under the destination.
	recordTextX = 2
	recordTimeX = 8

	// recordLineGap separates the two rows of one record.
	recordLineGap = 8
)

// SlideUp translates an outgoing line off the top of the panel while an
// incoming line enters from the bottom. Either string may be empty, making
// that half a no-op for all frames.
type SlideUp struct {
	Outgoing string
	Incoming string
	Font     display.Font
	BaseY    int

	y int
}

func NewSlideUp(outgoing, incoming string, font display.Font) *SlideUp {
	return &SlideUp{
		Outgoing: outgoing,
		Incoming: incoming,
		Font:     font,
		BaseY:    font.BaselineY(),
	}
}

func (a *SlideUp) Step(s display.Surface) (time.Duration, bool) {
	if a.y > ScreenHeight {
		return 0, true
	}

	s.Clear(true)

	if a.Outgoing != "" {
		outY := a.BaseY - a.y
		if outY > -a.Font.LineHeight() {
			s.DrawText(recordTextX, outY, a.Font, a.Outgoing)
		}
	}

	if a.Incoming != "" {
		inY := a.BaseY + ScreenHeight - a.y
		if inY < ScreenHeight {
			s.DrawText(recordTextX, inY, a.Font, a.Incoming)
		}
	}

	a.y++
	if a.y > ScreenHeight {
		return 0, true
	}
	return SlideStep, false
}

// Record is the two-line rendering of one departure: the destination row and
// the "time delay" row below it. A slide keeps both rows of a record
// visually paired, which the single-line SlideUp cannot do.
type Record struct {
	Destination string
	TimeLine    string
}

// SlideUpRecord translates an outgoing two-line record off the top while an
// incoming one enters from the bottom. Either side may be nil: nil outgoing
// on the first-ever display, nil incoming when collapsing.
type SlideUpRecord struct {
	Outgoing *Record
	Incoming *Record

	y int
}

func NewSlideUpRecord(outgoing, incoming *Record) *SlideUpRecord {
	return &SlideUpRecord{Outgoing: outgoing, Incoming: incoming}
}

func (a *SlideUpRecord) Step(s display.Surface) (time.Duration, bool) {
	if a.y > ScreenHeight {
		return 0, true
	}

	s.Clear(true)

	if a.Outgoing != nil {
		drawRecordLine(s, recordTextX, 0-a.y, a.Outgoing.Destination)
		drawRecordLine(s, recordTimeX, recordLineGap-a.y, a.Outgoing.TimeLine)
	}

	if a.Incoming != nil {
		drawRecordLine(s, recordTextX, ScreenHeight-a.y, a.Incoming.Destination)
		drawRecordLine(s, recordTimeX, ScreenHeight+recordLineGap-a.y, a.Incoming.TimeLine)
	}

	a.y++
	if a.y > ScreenHeight {
		return 0, true
	}
	return RecordSlideStep, false
}

// drawRecordLine draws one row of a record while its computed y is within
// the visible band (-lineHeight, ScreenHeight).
func drawRecordLine(s display.Surface, x, y int, text string) {
	if text == "" {
		return
	}
	if y <= -recordLineGap || y >= ScreenHeight {
		return
	}
	s.DrawText(x, y, display.FontSmall, text)
}
