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

// Package mocks provides test doubles for the board's hardware-facing
// interfaces.
package mocks

import (
	"sync"

	"github.com/TabelloneProject/tabellone-core/pkg/display"
)

// SurfaceCall records one call made against the MockSurface.
type SurfaceCall struct {
	Op     string // "clear", "text", "bitmap", "startScroll", "stepScroll"
	Text   string
	X, Y   int
	Font   display.Font
	Bitmap *display.Bitmap
}

// MockSurface is a display.Surface that records every call. Scroll geometry
// mirrors the real buffer so marquee animations terminate.
type MockSurface struct {
	mu          sync.Mutex
	calls       []SurfaceCall
	scrollX     int
	scrollWidth int
	scrolling   bool
	width       int
}

func NewMockSurface(width int) *MockSurface {
	return &MockSurface{width: width}
}

func (m *MockSurface) Clear(_ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SurfaceCall{Op: "clear"})
}

func (m *MockSurface) DrawText(x, y int, font display.Font, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SurfaceCall{Op: "text", X: x, Y: y, Font: font, Text: text})
}

func (m *MockSurface) DrawBitmap(x, y int, bm display.Bitmap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SurfaceCall{Op: "bitmap", X: x, Y: y, Bitmap: &bm})
}

func (m *MockSurface) StartScroll(text string, font display.Font, startX, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrolling = true
	m.scrollX = startX
	m.scrollWidth = font.TextWidth(text)
	m.calls = append(m.calls, SurfaceCall{Op: "startScroll", X: startX, Y: y, Font: font, Text: text})
}

func (m *MockSurface) StepScroll(dx int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SurfaceCall{Op: "stepScroll", X: dx})
	if !m.scrolling {
		return true
	}
	m.scrollX += dx
	if m.scrollX+m.scrollWidth <= 0 {
		m.scrolling = false
		return true
	}
	return false
}

// Calls returns a copy of all recorded calls.
func (m *MockSurface) Calls() []SurfaceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SurfaceCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsOf returns only the recorded calls of the given op.
func (m *MockSurface) CallsOf(op string) []SurfaceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []SurfaceCall
	for _, c := range m.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// TextDrawn reports whether any recorded text call matches text exactly.
func (m *MockSurface) TextDrawn(text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c.Op == "text" && c.Text == text {
			return true
		}
	}
	return false
}

// Reset discards all recorded calls, keeping scroll state.
func (m *MockSurface) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
