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
	"github.com/TabelloneProject/tabellone-core/pkg/helpers/syncutil"
)

// Buffer is the shared in-memory Surface. The logic thread mutates it, the
// Scanner samples it; the mutex guarantees every sampled Frame is internally
// consistent.
//
// LOCKING RULES: every exported method takes the lock for its whole body and
// never calls out while holding it.
type Buffer struct {
	scroll *scrollState
	ops    []Op
	gen    uint64
	width  int
	height int
	mu     syncutil.Mutex
}

type scrollState struct {
	text string
	font Font
	x    int
	y    int
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) Clear(_ bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = b.ops[:0]
	b.scroll = nil
	b.gen++
}

func (b *Buffer) DrawText(x, y int, font Font, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Fully off-panel text never reaches the driver.
	if y <= -font.LineHeight() || y >= b.height {
		return
	}

	b.ops = append(b.ops, Op{X: x, Y: y, Font: font, Text: text})
	b.gen++
}

func (b *Buffer) DrawBitmap(x, y int, bm Bitmap) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, Op{X: x, Y: y, Bitmap: &bm})
	b.gen++
}

func (b *Buffer) StartScroll(text string, font Font, startX, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scroll = &scrollState{
		text: text,
		font: font,
		x:    startX,
		y:    y,
	}
	b.gen++
}

// StepScroll shifts the marquee text horizontally. Done when the right edge
// of the text has passed the left edge of the panel.
func (b *Buffer) StepScroll(dx int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.scroll == nil {
		return true
	}

	b.scroll.x += dx
	b.gen++

	if b.scroll.x+b.scroll.font.TextWidth(b.scroll.text) <= 0 {
		b.scroll = nil
		return true
	}
	return false
}

// Snapshot copies the current buffer contents. The returned Frame shares no
// state with the buffer.
func (b *Buffer) Snapshot() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	ops := make([]Op, len(b.ops), len(b.ops)+1)
	copy(ops, b.ops)
	if b.scroll != nil {
		ops = append(ops, Op{
			X:    b.scroll.x,
			Y:    b.scroll.y,
			Font: b.scroll.font,
			Text: b.scroll.text,
		})
	}

	return Frame{Ops: ops, Gen: b.gen}
}
