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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferDrawAndClear(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64, 16)
	buf.DrawText(2, 0, FontSmall, "-> Milano")
	buf.DrawBitmap(8, 0, TrainIcon)

	frame := buf.Snapshot()
	require.Len(t, frame.Ops, 2)
	assert.Equal(t, "-> Milano", frame.Ops[0].Text)
	assert.NotNil(t, frame.Ops[1].Bitmap)

	buf.Clear(true)
	frame2 := buf.Snapshot()
	assert.Empty(t, frame2.Ops)
	assert.Greater(t, frame2.Gen, frame.Gen)
}

func TestBufferClipsOffPanelText(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64, 16)

	// Fully above the panel for an 8 px line.
	buf.DrawText(2, -8, FontSmall, "gone")
	// Fully below the panel.
	buf.DrawText(2, 16, FontSmall, "gone")
	// Partially visible rows are kept.
	buf.DrawText(2, -7, FontSmall, "peek")
	buf.DrawText(2, 15, FontSmall, "peek")

	frame := buf.Snapshot()
	require.Len(t, frame.Ops, 2)
	for _, op := range frame.Ops {
		assert.Equal(t, "peek", op.Text)
	}
}

func TestBufferScrollRunsToExit(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64, 16)
	buf.StartScroll("ab", FontSmall, 64, 2)

	// Text is 12 px wide and starts at x=64: it must take 64+12 leftward
	// single-pixel steps to fully exit.
	steps := 0
	for !buf.StepScroll(-1) {
		steps++
		require.Less(t, steps, 200, "scroll never finished")
	}
	assert.Equal(t, 64+FontSmall.TextWidth("ab"), steps+1)

	// Once done the marquee op disappears from snapshots.
	assert.Empty(t, buf.Snapshot().Ops)
}

func TestBufferSnapshotIncludesScrollPosition(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64, 16)
	buf.StartScroll("meteo", FontLarge, 64, 2)
	buf.StepScroll(-1)
	buf.StepScroll(-1)

	frame := buf.Snapshot()
	require.Len(t, frame.Ops, 1)
	assert.Equal(t, 62, frame.Ops[0].X)
	assert.Equal(t, "meteo", frame.Ops[0].Text)

	// Snapshots are isolated from later mutation.
	buf.StepScroll(-1)
	assert.Equal(t, 62, frame.Ops[0].X)
}

func TestStepScrollWithoutStartIsDone(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64, 16)
	assert.True(t, buf.StepScroll(-1))
}
