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

package board

import (
	"context"
	"testing"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/display"
	"github.com/TabelloneProject/tabellone-core/pkg/feed"
	"github.com/TabelloneProject/tabellone-core/pkg/localtime"
	"github.com/TabelloneProject/tabellone-core/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDurations = Durations{
	Clock:         10 * time.Second,
	InfoHold:      25 * time.Millisecond,
	DepartureHold: 40 * time.Millisecond,
}

type fixture struct {
	board   *Board
	surface *mocks.MockSurface
	store   *feed.Store
	clk     *clockwork.FakeClock
}

func newFixture(t *testing.T, snap feed.Snapshot) *fixture {
	t.Helper()

	clk := clockwork.NewFakeClock()
	surface := mocks.NewMockSurface(64)
	store := feed.NewStore()
	store.Replace(snap)

	wall := localtime.New(clk)
	require.NoError(t, wall.Sync("08:15:00"))

	b := New(Params{
		Surface:        surface,
		Store:          store,
		Wall:           wall,
		Clock:          clk,
		DefaultStation: "CF",
		Durations:      testDurations,
		ScreenWidth:    64,
	})

	return &fixture{board: b, surface: surface, store: store, clk: clk}
}

// autoAdvance drives the fake clock forward in small increments so that
// blocking sleeps inside Step resolve without real-time waits.
func (f *fixture) autoAdvance(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.Cleanup(func() {
		cancel()
		<-done
	})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				f.clk.Advance(5 * time.Millisecond)
				time.Sleep(50 * time.Microsecond)
			}
		}
	}()
}

func twoDepartures() feed.Snapshot {
	return feed.Snapshot{
		StationName:    "Centrale",
		WeatherSummary: "21° - Sereno",
		Departures: []feed.TrainDeparture{
			{Destination: "-> Nord", ScheduledTime: "08:15", Delay: "2 min"},
			{Destination: "-> Sud", ScheduledTime: "08:30", Delay: "in orario"},
		},
	}
}

func TestClockRedrawsOnlyOnSecondChange(t *testing.T) {
	t.Parallel()

	f := newFixture(t, feed.Snapshot{})

	// Several cycles within the same second: exactly one draw.
	f.board.Step()
	f.board.Step()
	f.board.Step()
	texts := f.surface.CallsOf("text")
	require.Len(t, texts, 1)
	assert.Equal(t, "08:15:00", texts[0].Text)
	assert.Equal(t, clockX, texts[0].X)
	assert.Equal(t, display.FontLarge, texts[0].Font)

	// Each elapsed second yields exactly one more draw.
	f.clk.Advance(time.Second)
	f.board.Step()
	f.board.Step()
	f.clk.Advance(time.Second)
	f.board.Step()

	texts = f.surface.CallsOf("text")
	require.Len(t, texts, 3)
	assert.Equal(t, "08:15:01", texts[1].Text)
	assert.Equal(t, "08:15:02", texts[2].Text)
	assert.Equal(t, StateShowClock, f.board.State())
}

func TestClockRotatesAfterDwell(t *testing.T) {
	t.Parallel()

	f := newFixture(t, feed.Snapshot{})

	f.board.Step()
	assert.Equal(t, StateShowClock, f.board.State())

	f.clk.Advance(testDurations.Clock)
	f.board.Step()
	assert.Equal(t, StateShowWeather, f.board.State())
}

func TestWeatherScrollsOnceThenMovesOn(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)
	f.board.transition(StateShowWeather)
	f.surface.Reset()

	f.board.Step()

	starts := f.surface.CallsOf("startScroll")
	require.Len(t, starts, 1)
	assert.Equal(t, "21° - Sereno", starts[0].Text)
	assert.Equal(t, display.FontLarge, starts[0].Font)
	assert.Equal(t, StateShowDeparturesHeader, f.board.State())
}

func TestHeaderShowsIconAndStationBanner(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)
	f.board.transition(StateShowDeparturesHeader)
	f.surface.Reset()

	f.board.Step()

	require.Len(t, f.surface.CallsOf("bitmap"), 1)
	starts := f.surface.CallsOf("startScroll")
	require.Len(t, starts, 1)
	assert.Equal(t, "Treni da Centrale", starts[0].Text)
	assert.Equal(t, display.FontSmall, starts[0].Font)
	assert.Equal(t, StateShowDepartures, f.board.State())
}

func TestHeaderFallsBackToDefaultStation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, feed.Snapshot{WeatherSummary: "x"})
	f.autoAdvance(t)
	f.board.transition(StateShowDeparturesHeader)

	f.board.Step()

	starts := f.surface.CallsOf("startScroll")
	require.Len(t, starts, 1)
	assert.Equal(t, "Treni da CF", starts[0].Text)
}

func TestEmptyListShowsMessageAndReturnsToClock(t *testing.T) {
	t.Parallel()

	f := newFixture(t, feed.Snapshot{WeatherSummary: "x"})
	f.board.transition(StateShowDepartures)
	f.surface.Reset()

	done := make(chan struct{})
	go func() {
		f.board.Step()
		close(done)
	}()

	// The message is up and the board holds for exactly the info dwell.
	err := f.clk.BlockUntilContext(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, f.surface.TextDrawn(emptyLabel))

	f.clk.Advance(testDurations.InfoHold - time.Millisecond)
	select {
	case <-done:
		t.Fatal("hold released before the configured dwell")
	case <-time.After(20 * time.Millisecond):
	}

	f.clk.Advance(time.Millisecond)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hold never released")
	}

	assert.Equal(t, StateShowClock, f.board.State())

	// The per-departure branch was never entered.
	for _, c := range f.surface.CallsOf("text") {
		if c.Text != emptyLabel {
			// Clock redraw after the transition is fine; departures are
			// always prefixed with the directional marker.
			assert.NotContains(t, c.Text, "->")
		}
	}
}

func TestRotationVisitsEachDepartureOnceInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)
	f.board.transition(StateShowDepartures)

	// Record 0: rendered directly, no slide.
	f.surface.Reset()
	f.board.Step()
	assert.Len(t, f.surface.CallsOf("clear"), 1)
	texts := f.surface.CallsOf("text")
	require.Len(t, texts, 2)
	assert.Equal(t, "-> Nord", texts[0].Text)
	assert.Equal(t, 0, texts[0].Y)
	assert.Equal(t, "08:15 2 min", texts[1].Text)
	assert.Equal(t, depLineGap, texts[1].Y)
	assert.Equal(t, 0, f.board.lastShownIndex)
	assert.Equal(t, 1, f.board.departureIndex)

	// Record 1: one 17-frame slide from record 0.
	f.surface.Reset()
	f.board.Step()
	assert.Len(t, f.surface.CallsOf("clear"), 17)
	assert.True(t, f.surface.TextDrawn("-> Sud"))
	assert.True(t, f.surface.TextDrawn("08:30 in orario"))
	assert.Equal(t, 1, f.board.lastShownIndex)
	assert.Equal(t, 2, f.board.departureIndex)
	assert.Equal(t, StateShowDepartures, f.board.State())

	// Rotation complete: cursors reset, back to the clock.
	f.board.Step()
	assert.Equal(t, StateShowClock, f.board.State())
	assert.Equal(t, 0, f.board.departureIndex)
	assert.Equal(t, -1, f.board.lastShownIndex)
	assert.Equal(t, display.FontLarge, f.board.Font())
}

func TestRotationIsIdempotentAcrossRepeats(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)

	for i := 0; i < 2; i++ {
		f.board.transition(StateShowDepartures)
		steps := 0
		for f.board.State() == StateShowDepartures {
			f.board.Step()
			steps++
			require.Less(t, steps, 10, "rotation did not terminate")
		}
		// n records plus the completing cycle.
		assert.Equal(t, 3, steps)
		assert.Equal(t, 0, f.board.departureIndex)
		assert.Equal(t, -1, f.board.lastShownIndex)
	}
}

func TestSingleDepartureScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t, feed.Snapshot{
		StationName: "Central",
		Departures: []feed.TrainDeparture{
			{Destination: "-> North", ScheduledTime: "08:15", Delay: "2 min"},
		},
	})
	f.autoAdvance(t)
	f.board.transition(StateShowDeparturesHeader)

	f.board.Step()
	starts := f.surface.CallsOf("startScroll")
	require.Len(t, starts, 1)
	assert.Equal(t, "Treni da Central", starts[0].Text)

	// The only record is rendered directly: no slide frames.
	f.surface.Reset()
	f.board.Step()
	assert.Len(t, f.surface.CallsOf("clear"), 1)
	assert.True(t, f.surface.TextDrawn("-> North"))
	assert.True(t, f.surface.TextDrawn("08:15 2 min"))

	// Index 1 >= length 1: back to the clock.
	f.board.Step()
	assert.Equal(t, StateShowClock, f.board.State())
}

func TestShorterFreshListCannotBeIndexedOutOfBounds(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)
	f.board.transition(StateShowDepartures)

	// Show record 0, then shrink the list to one entry mid-rotation.
	f.board.Step()
	f.store.Replace(feed.Snapshot{
		Departures: []feed.TrainDeparture{
			{Destination: "-> Ovest", ScheduledTime: "09:00"},
		},
	})

	// departureIndex is 1, beyond the fresh list: the rotation completes
	// without touching the out-of-range record.
	f.board.Step()
	assert.Equal(t, StateShowClock, f.board.State())
}

func TestFullRotationSequence(t *testing.T) {
	t.Parallel()

	f := newFixture(t, twoDepartures())
	f.autoAdvance(t)

	seen := []State{f.board.State()}
	steps := 0
	for len(seen) < 8 {
		prev := f.board.State()
		f.board.Step()
		steps++
		require.Less(t, steps, 50000, "rotation stalled")
		if f.board.State() != prev {
			seen = append(seen, f.board.State())
		}
		// The clock dwell only expires with elapsed fake time, which
		// autoAdvance supplies.
	}

	assert.Equal(t, []State{
		StateShowClock,
		StateShowWeather,
		StateShowDeparturesHeader,
		StateShowDepartures,
		StateShowClock,
		StateShowWeather,
		StateShowDeparturesHeader,
		StateShowDepartures,
	}, seen)
}
