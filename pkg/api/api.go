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

// Package api exposes a small read-only status surface over HTTP. Nothing
// here feeds back into the rotation; it exists for remote health checks and
// debugging a board that has no other output than its pixels.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/board"
	"github.com/TabelloneProject/tabellone-core/pkg/feed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Status is the /api/status response body.
type Status struct {
	State     string `json:"state"`
	BootUUID  string `json:"bootUuid"`
	UptimeSec int64  `json:"uptimeSec"`
}

// SnapshotResponse is the /api/snapshot response body.
type SnapshotResponse struct {
	FetchedAt      time.Time           `json:"fetchedAt"`
	StationName    string              `json:"stationName,omitempty"`
	WeatherSummary string              `json:"weatherSummary"`
	Departures     []DepartureResponse `json:"departures"`
}

type DepartureResponse struct {
	Type          string `json:"type"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	Delay         string `json:"delay,omitempty"`
}

// Server serves the status API.
type Server struct {
	board     *board.Board
	store     *feed.Store
	clock     clockwork.Clock
	bootUUID  string
	startedAt time.Time
}

func NewServer(b *board.Board, store *feed.Store, bootUUID string, clock clockwork.Clock) *Server {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Server{
		board:     b,
		store:     store,
		clock:     clock,
		bootUUID:  bootUUID,
		startedAt: clock.Now(),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/snapshot", s.handleSnapshot)

	return r
}

func (*Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, Status{
		State:     s.board.State().String(),
		BootUUID:  s.bootUUID,
		UptimeSec: int64(s.clock.Since(s.startedAt) / time.Second),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Latest()

	deps := make([]DepartureResponse, 0, len(snap.Departures))
	for _, d := range snap.Departures {
		deps = append(deps, DepartureResponse{
			Type:          d.Kind,
			Destination:   d.Destination,
			DepartureTime: d.ScheduledTime,
			Delay:         d.Delay,
		})
	}

	writeJSON(w, SnapshotResponse{
		FetchedAt:      snap.FetchedAt,
		StationName:    snap.StationName,
		WeatherSummary: snap.WeatherSummary,
		Departures:     deps,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("error encoding api response")
	}
}
