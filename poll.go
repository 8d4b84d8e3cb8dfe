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

// PollConfig bounds the interrupt-wait loop of a card transaction. The
// budget counts iterations, not wall-clock time: the effective timeout is
// Budget times the per-iteration delay, which differs between presence
// checks and everything else. Card-removal behavior depends on these exact
// semantics, so the loop is never expressed as a deadline.
type PollConfig struct {
	// Budget is the maximum number of interrupt-register reads.
	Budget int
	// Interval is the sleep before each read outside presence checks.
	Interval time.Duration
	// CheckInterval is the shorter sleep used while a presence check is
	// in flight, keeping discovery responsive.
	CheckInterval time.Duration
}

// DefaultPollConfig returns the vendor reference poll bounds.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Budget:        2000,
		Interval:      20 * time.Millisecond,
		CheckInterval: 16 * time.Millisecond,
	}
}

// crcPollBudget bounds the CRC coprocessor wait loop. The vendor reference
// returns whatever the result registers hold if the budget lapses, without
// signaling an error; CalculateCRC preserves that.
const crcPollBudget = 255

// waitReg polls read() up to budget times, sleeping delay before each
// attempt, until done reports the read value terminal. It returns the last
// value read and whether done was ever satisfied.
func waitReg(budget int, delay time.Duration, sleep func(time.Duration), read func() byte, done func(byte) bool) (byte, bool) {
	var v byte
	for i := 0; i < budget; i++ {
		if delay > 0 {
			sleep(delay)
		}
		v = read()
		if done(v) {
			return v, true
		}
	}
	return v, false
}
