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

// Package localtime keeps the board's displayed wall clock. The device has
// no RTC; the feed's legacy "time" field pins the clock and it free-runs
// from there on the monotonic clock. Timezone and DST are the server's
// problem.
package localtime

import (
	"fmt"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
)

// Clock is the board's displayed time.
type Clock struct {
	clock    clockwork.Clock
	syncedAt time.Time
	offset   int // seconds since midnight at syncedAt
	synced   bool
	mu       syncutil.RWMutex
}

func New(clock clockwork.Clock) *Clock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Clock{clock: clock}
}

// Sync pins the clock from an "HH:MM" or "HH:MM:SS" string. Invalid input
// is rejected without changing the current state.
func (c *Clock) Sync(value string) error {
	var h, m, s int
	if _, err := fmt.Sscanf(value, "%d:%d:%d", &h, &m, &s); err != nil {
		s = 0
		if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
			return fmt.Errorf("invalid time string %q: %w", value, err)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return fmt.Errorf("time string %q out of range", value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = h*3600 + m*60 + s
	c.syncedAt = c.clock.Now()
	c.synced = true
	return nil
}

// Synced reports whether the clock has been pinned at least once.
func (c *Clock) Synced() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synced
}

// Now returns the current displayed hour, minute and second, advancing from
// the last sync point and wrapping at midnight.
func (c *Clock) Now() (hour, minute, second int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	elapsed := 0
	if c.synced {
		elapsed = int(c.clock.Since(c.syncedAt) / time.Second)
	}
	total := (c.offset + elapsed) % 86400

	return total / 3600, (total % 3600) / 60, total % 60
}

// String renders the displayed time as "HH:MM:SS".
func (c *Clock) String() string {
	h, m, s := c.Now()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
