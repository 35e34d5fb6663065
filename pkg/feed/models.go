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

// Package feed fetches and holds the departure board's remote data: one
// weather line, an optional station name and an ordered batch of train
// departures. A fetch either fully replaces the previous snapshot or leaves
// it untouched; readers never see a half-applied update.
package feed

import (
	"strings"
	"time"
)

// TrainDeparture is one scheduled departure. Immutable once constructed;
// departures are created in a batch by the fetcher and the batch fully
// replaces the previous one.
type TrainDeparture struct {
	// Kind is the short service category code ("REG", "IC", ...).
	Kind string
	// Destination is free text, already prefixed with the directional
	// marker ("-> ").
	Destination string
	// ScheduledTime is HH:MM text.
	ScheduledTime string
	// Delay is free text: empty, "in orario" or a minutes-late indicator.
	Delay string
}

// TimeLine is the second display row of a departure record.
func (d TrainDeparture) TimeLine() string {
	if d.Delay == "" {
		return d.ScheduledTime
	}
	return d.ScheduledTime + " " + d.Delay
}

// Snapshot is one complete fetch result. The zero value is a valid "nothing
// fetched yet" snapshot.
type Snapshot struct {
	FetchedAt      time.Time
	StationName    string
	WeatherSummary string
	Departures     []TrainDeparture
}

// payload is the wire format of the feed endpoint.
type payload struct {
	Time        string           `json:"time"`
	Weather     payloadWeather   `json:"weather"`
	StationName string           `json:"stationName"`
	Departures  []payloadDeparture `json:"departures"`
}

type payloadWeather struct {
	Temperature string `json:"temperature"`
	Description string `json:"description"`
}

type payloadDeparture struct {
	Type          string `json:"type"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	Delay         string `json:"delay"`
}

// toSnapshot converts the wire payload into a display-ready snapshot.
func (p payload) toSnapshot(now time.Time) Snapshot {
	// The feed encodes the degree sign as "^"; the panel fonts have a
	// proper degree glyph.
	weather := strings.ReplaceAll(p.Weather.Temperature, "^", "°") +
		" - " + p.Weather.Description

	deps := make([]TrainDeparture, 0, len(p.Departures))
	for _, d := range p.Departures {
		deps = append(deps, TrainDeparture{
			Kind:          d.Type,
			Destination:   "-> " + d.Destination,
			ScheduledTime: d.DepartureTime,
			Delay:         d.Delay,
		})
	}

	return Snapshot{
		FetchedAt:      now,
		StationName:    p.StationName,
		WeatherSummary: weather,
		Departures:     deps,
	}
}
