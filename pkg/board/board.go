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

// Package board implements the display state machine: the strict linear
// rotation Clock -> Weather -> DeparturesHeader -> Departures -> Clock,
// with its dwell timing and transition animations. One Step advances the
// machine by one cycle and may block for the whole duration of an
// animation or hold; the machine runs cooperatively on a single goroutine.
package board

import (
	"fmt"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/display"
	"github.com/TabelloneProject/tabellone-core/pkg/display/anim"
	"github.com/TabelloneProject/tabellone-core/pkg/feed"
	"github.com/TabelloneProject/tabellone-core/pkg/helpers/syncutil"
	"github.com/TabelloneProject/tabellone-core/pkg/localtime"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// State identifies the active screen of the rotation.
type State int

const (
	StateShowClock State = iota
	StateShowWeather
	StateShowDeparturesHeader
	StateShowDepartures
)

func (s State) String() string {
	switch s {
	case StateShowClock:
		return "clock"
	case StateShowWeather:
		return "weather"
	case StateShowDeparturesHeader:
		return "departures_header"
	case StateShowDepartures:
		return "departures"
	default:
		return "unknown"
	}
}

// Durations are the fixed dwell times of the rotation.
type Durations struct {
	// Clock is how long the clock screen stays up.
	Clock time.Duration
	// InfoHold is the dwell of the header and the empty-list message.
	InfoHold time.Duration
	// DepartureHold is the dwell of each departure record.
	DepartureHold time.Duration
}

// Layout constants carried over from the panel artwork.
const (
	clockX      = 11
	textX       = 2
	depTimeX    = 8
	iconX       = 8
	depLineGap  = 8
	headerLabel = "Treni da "
	emptyLabel  = "Nessun treno"
)

// Params collects the board's collaborators.
type Params struct {
	Surface display.Surface
	Store   *feed.Store
	Wall    *localtime.Clock
	Clock   clockwork.Clock
	// DefaultStation labels the header when the feed gives no station
	// name.
	DefaultStation string
	Durations      Durations
	ScreenWidth    int
}

// Board is the consolidated render context: active state, cursors, font
// selection and entry timestamp. All mutation happens on the single logic
// goroutine; mu only covers the fields the status API reads concurrently.
type Board struct {
	surface display.Surface
	store   *feed.Store
	wall    *localtime.Clock
	clock   clockwork.Clock
	player  *anim.Player

	defaultStation string
	dur            Durations
	screenWidth    int

	state          State
	enteredAt      time.Time
	font           display.Font
	departureIndex int
	lastShownIndex int
	lastDrawnSec   int
	mu             syncutil.RWMutex
}

func New(p Params) *Board {
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	b := &Board{
		surface:        p.Surface,
		store:          p.Store,
		wall:           p.Wall,
		clock:          p.Clock,
		player:         anim.NewPlayer(p.Clock),
		defaultStation: p.DefaultStation,
		dur:            p.Durations,
		screenWidth:    p.ScreenWidth,
		state:          StateShowClock,
		font:           display.FontLarge,
		lastShownIndex: -1,
		lastDrawnSec:   -1,
	}
	b.enteredAt = p.Clock.Now()
	return b
}

// State returns the active screen.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Font returns the active font variant.
func (b *Board) Font() display.Font {
	return b.font
}

// Step advances the state machine by one logic cycle. It may block for the
// duration of a full animation or hold before returning.
func (b *Board) Step() {
	switch b.State() {
	case StateShowClock:
		b.stepClock()
	case StateShowWeather:
		b.stepWeather()
	case StateShowDeparturesHeader:
		b.stepHeader()
	case StateShowDepartures:
		b.stepDepartures()
	}
}

func (b *Board) transition(next State) {
	log.Debug().
		Stringer("from", b.state).
		Stringer("to", next).
		Msg("screen transition")

	b.mu.Lock()
	b.state = next
	b.mu.Unlock()
	b.enteredAt = b.clock.Now()

	switch next {
	case StateShowClock:
		b.font = display.FontLarge
		b.surface.Clear(true)
		b.lastDrawnSec = -1
	case StateShowDepartures:
		// The rotation's snapshot cursor restarts here, so data fetched
		// mid-rotation becomes visible only from this point on.
		b.departureIndex = 0
		b.lastShownIndex = -1
	case StateShowWeather, StateShowDeparturesHeader:
	}
}

// stepClock redraws "HH:MM:SS" only when the second changes, then rotates
// to the weather screen after the clock dwell.
func (b *Board) stepClock() {
	h, m, s := b.wall.Now()
	if s != b.lastDrawnSec {
		b.surface.Clear(true)
		b.surface.DrawText(
			clockX, b.font.BaselineY(), b.font,
			fmt.Sprintf("%02d:%02d:%02d", h, m, s),
		)
		b.lastDrawnSec = s
	}

	if b.clock.Since(b.enteredAt) >= b.dur.Clock {
		b.transition(StateShowWeather)
	}
}

// stepWeather scrolls the weather line once, to completion, then moves on.
func (b *Board) stepWeather() {
	b.font = display.FontLarge
	b.surface.Clear(true)

	snap := b.store.Latest()
	b.player.Run(b.surface, anim.NewMarquee(snap.WeatherSummary, b.font, b.screenWidth))

	b.transition(StateShowDeparturesHeader)
}

// stepHeader shows the train icon while the "Treni da {station}" banner
// scrolls past, holds briefly, then enters the departures rotation.
func (b *Board) stepHeader() {
	b.surface.Clear(true)
	b.font = display.FontSmall
	b.surface.DrawBitmap(iconX, 0, display.TrainIcon)

	station := b.store.Latest().StationName
	if station == "" {
		station = b.defaultStation
	}
	b.player.Run(b.surface, anim.NewMarquee(headerLabel+station, b.font, b.screenWidth))

	b.clock.Sleep(b.dur.InfoHold)
	b.transition(StateShowDepartures)
}

// stepDepartures shows one departure record per cycle. The snapshot is
// re-read and the cursors re-validated every cycle, so a shorter freshly
// fetched list can never be indexed out of bounds.
func (b *Board) stepDepartures() {
	snap := b.store.Latest()

	if len(snap.Departures) == 0 {
		b.surface.Clear(true)
		b.font = display.FontSmall
		b.surface.DrawText(textX, 0, b.font, emptyLabel)
		b.clock.Sleep(b.dur.InfoHold)
		b.transition(StateShowClock)
		return
	}

	if b.departureIndex >= len(snap.Departures) {
		// Rotation complete.
		b.departureIndex = 0
		b.lastShownIndex = -1
		b.transition(StateShowClock)
		return
	}

	b.font = display.FontSmall
	cur := snap.Departures[b.departureIndex]

	if b.lastShownIndex < 0 || b.lastShownIndex >= len(snap.Departures) {
		// First record of the rotation is rendered directly, no slide.
		b.surface.Clear(true)
		b.surface.DrawText(textX, 0, b.font, cur.Destination)
		b.surface.DrawText(depTimeX, depLineGap, b.font, cur.TimeLine())
	} else {
		prev := snap.Departures[b.lastShownIndex]
		b.player.Run(b.surface, anim.NewSlideUpRecord(
			&anim.Record{Destination: prev.Destination, TimeLine: prev.TimeLine()},
			&anim.Record{Destination: cur.Destination, TimeLine: cur.TimeLine()},
		))
	}

	b.clock.Sleep(b.dur.DepartureHold)
	b.lastShownIndex = b.departureIndex
	b.departureIndex++
}
