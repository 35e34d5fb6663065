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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/TabelloneProject/tabellone-core/pkg/helpers/syncutil"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "TABELLONE_CFG"
	CfgFile       = "config.toml"

	// DefaultStationID is the board's home station when none is configured.
	DefaultStationID = "S05037"
	// DefaultStationLabel is shown in the departures header when the feed
	// does not supply a station name.
	DefaultStationLabel = "CF"

	// PanelWidth and PanelHeight describe a single DMD panel in pixels.
	PanelWidth  = 32
	PanelHeight = 16
)

type Values struct {
	Feed         Feed      `toml:"feed"`
	Display      Display   `toml:"display"`
	Rotation     Rotation  `toml:"rotation"`
	API          APIServer `toml:"api,omitempty"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

// Feed configures the departures endpoint and fetch policy.
type Feed struct {
	BaseURL        string `toml:"base_url"        validate:"required,url"`
	APIKey         string `toml:"api_key"`
	StationID      string `toml:"station_id"      validate:"required,alphanum"`
	Limit          int    `toml:"limit"           validate:"gt=0"`
	IntervalSecs   int    `toml:"interval_secs"   validate:"gt=0"`
	HTTPTimeoutSec int    `toml:"http_timeout_secs" validate:"gt=0"`
}

// Display configures the physical panel geometry.
type Display struct {
	PanelsAcross int `toml:"panels_across" validate:"gte=1"`
	ScanHz       int `toml:"scan_hz"       validate:"gt=0"`
}

// Rotation configures the dwell durations of the screen rotation, in
// milliseconds. The departure hold is fixed at 1.5x the info hold.
type Rotation struct {
	ClockMs    int `toml:"clock_ms"     validate:"gt=0"`
	InfoHoldMs int `toml:"info_hold_ms" validate:"gt=0"`
}

// APIServer configures the optional read-only status API.
type APIServer struct {
	Addr    string `toml:"addr,omitempty"`
	Enabled bool   `toml:"enabled"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Feed: Feed{
		BaseURL:        "https://arduino-train-api.bitrey.it",
		StationID:      DefaultStationID,
		Limit:          5,
		IntervalSecs:   300,
		HTTPTimeoutSec: 15,
	},
	Display: Display{
		PanelsAcross: 2,
		ScanHz:       50,
	},
	Rotation: Rotation{
		ClockMs:    10000,
		InfoHoldMs: 2500,
	},
	API: APIServer{
		Addr: ":7497",
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	if _, err := os.Stat(c.cfgPath); err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validate.Struct(&newVals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.vals = newVals

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) FeedURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf(
		"%s/departures/%s?limit=%d&key=%s",
		c.vals.Feed.BaseURL, c.vals.Feed.StationID, c.vals.Feed.Limit, c.vals.Feed.APIKey,
	)
}

func (c *Instance) StationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Feed.StationID
}

func (c *Instance) FetchInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Feed.IntervalSecs) * time.Second
}

func (c *Instance) HTTPTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Feed.HTTPTimeoutSec) * time.Second
}

// ScreenWidth is the total pixel width of the chained panels.
func (c *Instance) ScreenWidth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return PanelWidth * c.vals.Display.PanelsAcross
}

// ScreenHeight is the pixel height of the panel row.
func (c *Instance) ScreenHeight() int {
	return PanelHeight
}

func (c *Instance) ScanHz() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Display.ScanHz
}

// ClockDwell is how long the clock screen stays up before rotating.
func (c *Instance) ClockDwell() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Rotation.ClockMs) * time.Millisecond
}

// InfoHold is the dwell applied to the header and empty-list screens.
func (c *Instance) InfoHold() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Rotation.InfoHoldMs) * time.Millisecond
}

// DepartureHold is the dwell applied to each departure record. The original
// board held each record for 1.5x the info hold and that ratio is kept fixed.
func (c *Instance) DepartureHold() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Rotation.InfoHoldMs) * time.Millisecond * 3 / 2
}

func (c *Instance) APIEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Enabled
}

func (c *Instance) APIAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Addr
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}
