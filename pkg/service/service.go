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

package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/api"
	"github.com/TabelloneProject/tabellone-core/pkg/board"
	"github.com/TabelloneProject/tabellone-core/pkg/config"
	"github.com/TabelloneProject/tabellone-core/pkg/display"
	"github.com/TabelloneProject/tabellone-core/pkg/feed"
	"github.com/TabelloneProject/tabellone-core/pkg/localtime"
	"github.com/TabelloneProject/tabellone-core/pkg/netcheck"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// stepYield keeps the logic loop from spinning while a screen is idle
// between redraws. Holds and animations block inside Board.Step itself.
const stepYield = 20 * time.Millisecond

// Deps are the service's replaceable collaborators. Zero values select the
// production implementations.
type Deps struct {
	Clock          clockwork.Clock
	Checker        netcheck.Checker
	Panel          display.Panel
	StartupBackoff retry.Backoff
}

func (d *Deps) fillDefaults() {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Checker == nil {
		d.Checker = netcheck.InterfaceChecker{}
	}
	if d.Panel == nil {
		d.Panel = display.LogPanel{}
	}
	if d.StartupBackoff == nil {
		d.StartupBackoff = retry.WithMaxRetries(
			3, retry.NewExponential(time.Second),
		)
	}
}

// Start boots the display service and returns a function that shuts it
// down. It blocks only for the startup fetch attempts; the scan and logic
// loops run on their own goroutines.
func Start(cfg *config.Instance, deps Deps) (func() error, error) {
	deps.fillDefaults()

	bootUUID := uuid.NewString()
	log.Info().Str("id", bootUUID).Msg("starting tabellone service")

	buf := display.NewBuffer(cfg.ScreenWidth(), cfg.ScreenHeight())
	scanner := display.NewScanner(buf, deps.Panel, cfg.ScanHz(), deps.Clock)
	store := feed.NewStore()
	wall := localtime.New(deps.Clock)
	fetcher := feed.NewFetcher(
		cfg.FeedURL(), cfg.HTTPTimeout(), deps.Checker, store, deps.Clock,
	)
	brd := board.New(board.Params{
		Surface:        buf,
		Store:          store,
		Wall:           wall,
		Clock:          deps.Clock,
		DefaultStation: config.DefaultStationLabel,
		Durations: board.Durations{
			Clock:         cfg.ClockDwell(),
			InfoHold:      cfg.InfoHold(),
			DepartureHold: cfg.DepartureHold(),
		},
		ScreenWidth: cfg.ScreenWidth(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	scanner.Start(ctx)

	// The board keeps running on placeholder data if the startup fetch
	// never succeeds; the loop below retries on its normal interval.
	if err := startupFetch(ctx, fetcher, store, wall, deps.StartupBackoff); err != nil {
		log.Warn().Err(err).Msg("startup fetch failed, showing placeholder")
	}

	var apiSrv *http.Server
	if cfg.APIEnabled() {
		apiSrv = &http.Server{
			Addr:              cfg.APIAddr(),
			Handler:           api.NewServer(brd, store, bootUUID, deps.Clock).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info().Str("addr", apiSrv.Addr).Msg("starting status API")
			err := apiSrv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("status API stopped")
			}
		}()
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		runLoop(ctx, cfg, deps.Clock, fetcher, store, wall, brd)
	}()

	return func() error {
		log.Info().Msg("stopping tabellone service")
		cancel()
		<-loopDone
		scanner.Wait()
		if apiSrv != nil {
			shutCtx, shutCancel := context.WithTimeout(
				context.Background(), 5*time.Second,
			)
			defer shutCancel()
			if err := apiSrv.Shutdown(shutCtx); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func startupFetch(
	ctx context.Context,
	fetcher *feed.Fetcher,
	store *feed.Store,
	wall *localtime.Clock,
	backoff retry.Backoff,
) error {
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		timeStr, err := fetcher.Fetch(ctx)
		if err != nil {
			store.SetWeather(feed.PlaceholderFor(err))
			return retry.RetryableError(err)
		}
		syncWall(wall, timeStr)
		return nil
	})
}

func runLoop(
	ctx context.Context,
	cfg *config.Instance,
	clock clockwork.Clock,
	fetcher *feed.Fetcher,
	store *feed.Store,
	wall *localtime.Clock,
	brd *board.Board,
) {
	lastFetch := clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if clock.Since(lastFetch) >= cfg.FetchInterval() {
			timeStr, err := fetcher.Fetch(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("feed fetch failed")
				store.SetWeather(feed.PlaceholderFor(err))
			} else {
				syncWall(wall, timeStr)
			}
			lastFetch = clock.Now()
		}

		brd.Step()
		clock.Sleep(stepYield)
	}
}

func syncWall(wall *localtime.Clock, value string) {
	if value == "" {
		return
	}
	if err := wall.Sync(value); err != nil {
		log.Warn().Err(err).Str("value", value).Msg("bad feed time")
	}
}
