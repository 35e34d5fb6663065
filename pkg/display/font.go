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

// Font identifies one of the two fixed font variants available on the panel.
// The panel driver owns the actual glyph data; the core only needs each
// font's layout metrics.
type Font int

const (
	// FontLarge is the tall proportional font used for the clock and
	// weather screens.
	FontLarge Font = iota
	// FontSmall is the 5x7 system font used for the two-line departure
	// screens.
	FontSmall
)

func (f Font) String() string {
	if f == FontSmall {
		return "small"
	}
	return "large"
}

// BaselineY is the vertical text position that centers a single line of this
// font on a 16 px panel.
func (f Font) BaselineY() int {
	if f == FontSmall {
		return 4
	}
	return 2
}

// LineHeight is the vertical extent of one text row, used for slide
// clipping. Two FontSmall rows fit on one panel.
func (f Font) LineHeight() int {
	if f == FontSmall {
		return 8
	}
	return 14
}

// Advance is the horizontal step per character, including spacing. FontLarge
// is proportional on real hardware; a fixed advance is close enough for
// scroll-exit geometry.
func (f Font) Advance() int {
	if f == FontSmall {
		return 6
	}
	return 8
}

// TextWidth is the pixel width of text rendered in this font.
func (f Font) TextWidth(text string) int {
	n := 0
	for range text {
		n++
	}
	return n * f.Advance()
}
