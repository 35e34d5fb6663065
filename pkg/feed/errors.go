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
	"errors"
	"fmt"
)

// ErrNetworkUnavailable means the connectivity collaborator reported the
// network as down; no request was attempted.
var ErrNetworkUnavailable = errors.New("network unavailable")

// TransportError wraps DNS, connect and timeout failures from the HTTP
// round trip.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-success HTTP status from the feed endpoint.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// DecodeError wraps a malformed or type-mismatched payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PlaceholderFor maps a fetch error to the short human-readable text shown
// in place of the weather summary. The mapping keeps literal display text
// out of the decision logic.
func PlaceholderFor(err error) string {
	var httpErr *HTTPError
	var decodeErr *DecodeError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return fmt.Sprintf("HTTP Error %d", httpErr.Status)
	case errors.As(err, &decodeErr):
		return "JSON Error"
	default:
		// Network down and transport failures read the same on a 16 px
		// panel.
		return "Connection Failed"
	}
}
