// go-mfrc522
// Copyright (c) 2025 The CardForge Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-mfrc522.
//
// go-mfrc522 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-mfrc522 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-mfrc522; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package mfrc522

import "time"

// Option configures a Device during New.
type Option func(*Device)

// WithVariant selects the Init register program.
func WithVariant(v Variant) Option {
	return func(d *Device) {
		d.variant = v
	}
}

// WithPollConfig overrides the interrupt-wait bounds. Useful for tests and
// for hosts where the default 40 s worst case is too long.
func WithPollConfig(cfg PollConfig) Option {
	return func(d *Device) {
		d.poll = cfg
	}
}

// WithSleep replaces the sleep function used between poll iterations and
// after reset. Tests use this to run poll loops without real delays.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Device) {
		d.sleep = sleep
	}
}
