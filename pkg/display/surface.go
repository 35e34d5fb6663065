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

// Package display models the pixel matrix panel as an abstract drawing
// surface. The logic thread draws into a shared in-memory buffer and an
// independent scanner task paints whatever is in the buffer onto the
// physical panel, so nothing here ever flushes explicitly.
package display

// Bitmap is a 1-bit image in row-major order, MSB first, as stored by the
// panel's native bitmap format.
type Bitmap struct {
	Data   []byte
	Width  int
	Height int
}

// Surface is the drawing capability consumed by the state machine and the
// animation primitives. Draw calls are infallible; anything that goes wrong
// below this interface is the panel driver's problem.
type Surface interface {
	// Clear erases the whole buffer. When immediate is false a driver may
	// defer the erase to the next draw; the in-memory buffer treats both
	// the same.
	Clear(immediate bool)
	// DrawText draws one line of text with its top-left corner at (x, y).
	// Text fully outside the panel is clipped by the driver.
	DrawText(x, y int, font Font, text string)
	// DrawBitmap draws a bitmap with its top-left corner at (x, y).
	DrawBitmap(x, y int, bm Bitmap)
	// StartScroll initializes marquee state: text placed with its left
	// edge at startX, ready to be stepped horizontally.
	StartScroll(text string, font Font, startX, y int)
	// StepScroll shifts the marquee text by dx pixels (negative is
	// leftward) and reports whether the text has fully exited the panel.
	StepScroll(dx int) bool
}

// Op is one recorded draw operation. The scanner hands ops to the panel
// driver, which rasterizes them with the real glyph data.
type Op struct {
	Text   string
	Bitmap *Bitmap
	X      int
	Y      int
	Font   Font
}

// Frame is an internally consistent snapshot of the buffer contents.
// Gen increases with every buffer mutation, letting the scanner skip
// repaints of unchanged frames.
type Frame struct {
	Ops []Op
	Gen uint64
}
