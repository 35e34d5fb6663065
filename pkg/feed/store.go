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

package feed

import (
	"github.com/TabelloneProject/tabellone-core/pkg/helpers/syncutil"
)

// InitialWeather is shown before the first successful fetch.
const InitialWeather = "Loading..."

// Store holds the latest successfully fetched Snapshot. Replacement is
// atomic: readers get either the old snapshot or the new one, never a mix.
// On fetch failure only the weather line is substituted with a placeholder;
// stale departures beat empty ones.
type Store struct {
	snap Snapshot
	mu   syncutil.RWMutex
}

func NewStore() *Store {
	return &Store{
		snap: Snapshot{WeatherSummary: InitialWeather},
	}
}

// Latest returns a copy of the current snapshot. The departures slice is
// copied so callers can never observe a later replacement mid-read.
func (s *Store) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snap
	if len(s.snap.Departures) > 0 {
		out.Departures = make([]TrainDeparture, len(s.snap.Departures))
		copy(out.Departures, s.snap.Departures)
	}
	return out
}

// Replace swaps in a complete new snapshot.
//
//nolint:gocritic // snapshot copied for immutability
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// SetWeather substitutes only the weather line, leaving the station name and
// departure batch from the last successful fetch unchanged.
func (s *Store) SetWeather(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WeatherSummary = summary
}
