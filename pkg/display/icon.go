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

// TrainIcon is the 16x16 glyph shown next to the departures header.
var TrainIcon = Bitmap{
	Width:  16,
	Height: 16,
	Data: []byte{
		0xf0, 0x07, 0xc0, 0x03, 0x80, 0x01, 0x9e, 0x79,
		0x9e, 0x79, 0x9e, 0x79, 0x9e, 0x79, 0x80, 0x01,
		0x80, 0x01, 0x80, 0x01, 0x98, 0x19, 0x98, 0x19,
		0x88, 0x11, 0xc0, 0x03, 0xf3, 0xcf, 0xe7, 0xe7,
	},
}
