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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/netcheck"
	"github.com/TabelloneProject/tabellone-core/pkg/shared/httpclient"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Fetcher performs one HTTP round trip against the departures endpoint and
// atomically replaces the Store's snapshot on success. All failure modes
// are typed and leave the Store untouched.
type Fetcher struct {
	client  *httpclient.Client
	checker netcheck.Checker
	store   *Store
	clock   clockwork.Clock
	url     string
}

func NewFetcher(
	url string,
	timeout time.Duration,
	checker netcheck.Checker,
	store *Store,
	clock clockwork.Clock,
) *Fetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Fetcher{
		url:     url,
		client:  httpclient.NewClientWithTimeout(timeout),
		checker: checker,
		store:   store,
		clock:   clock,
	}
}

// Fetch runs one fetch cycle. On success it replaces the store snapshot and
// returns the feed's wall-clock string ("HH:MM" or "HH:MM:SS", may be
// empty) for the legacy time-sync path. On failure it returns one of
// ErrNetworkUnavailable, *TransportError, *HTTPError or *DecodeError.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if !f.checker.Online() {
		return "", ErrNetworkUnavailable
	}

	resp, err := f.client.Get(ctx, f.url)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing feed response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", &DecodeError{Err: err}
	}

	snap := p.toSnapshot(f.clock.Now())
	f.store.Replace(snap)
	log.Debug().
		Int("departures", len(snap.Departures)).
		Str("station", snap.StationName).
		Msg("feed snapshot replaced")

	return p.Time, nil
}
