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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/board"
	"github.com/TabelloneProject/tabellone-core/pkg/feed"
	"github.com/TabelloneProject/tabellone-core/pkg/localtime"
	"github.com/TabelloneProject/tabellone-core/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *feed.Store, *clockwork.FakeClock) {
	t.Helper()

	clk := clockwork.NewFakeClock()
	store := feed.NewStore()
	b := board.New(board.Params{
		Surface:        mocks.NewMockSurface(64),
		Store:          store,
		Wall:           localtime.New(clk),
		Clock:          clk,
		DefaultStation: "CF",
		Durations: board.Durations{
			Clock:         10 * time.Second,
			InfoHold:      time.Millisecond,
			DepartureHold: time.Millisecond,
		},
		ScreenWidth: 64,
	})

	return NewServer(b, store, "boot-1234", clk), store, clk
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rec := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	srv, _, clk := newTestServer(t)
	clk.Advance(90 * time.Second)

	rec := get(t, srv, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "clock", status.State)
	assert.Equal(t, "boot-1234", status.BootUUID)
	assert.Equal(t, int64(90), status.UptimeSec)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	srv, store, _ := newTestServer(t)
	store.Replace(feed.Snapshot{
		StationName:    "Centrale",
		WeatherSummary: "21° - Sereno",
		Departures: []feed.TrainDeparture{
			{Kind: "REG", Destination: "-> Nord", ScheduledTime: "08:15", Delay: "2 min"},
		},
	})

	rec := get(t, srv, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "Centrale", snap.StationName)
	assert.Equal(t, "21° - Sereno", snap.WeatherSummary)
	require.Len(t, snap.Departures, 1)
	assert.Equal(t, "REG", snap.Departures[0].Type)
	assert.Equal(t, "-> Nord", snap.Departures[0].Destination)
}

func TestUnknownRouteIs404(t *testing.T) {
	t.Parallel()

	srv, _, _ := newTestServer(t)
	rec := get(t, srv, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
