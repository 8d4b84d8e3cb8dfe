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

package main

import (
	"fmt"
	"io"
	"strings"

	mfrc522 "github.com/cardforge/go-mfrc522"
)

// printBlock writes one block as hex pairs plus an ASCII gutter.
func printBlock(w io.Writer, addr byte, data []byte) {
	var hexCol, ascii strings.Builder
	for i, b := range data {
		if i > 0 {
			hexCol.WriteByte(' ')
		}
		fmt.Fprintf(&hexCol, "%02X", b)
		if b >= 0x20 && b < 0x7F {
			ascii.WriteByte(b)
		} else {
			ascii.WriteByte('.')
		}
	}
	fmt.Fprintf(w, "%2d  %s  |%s|\n", addr, hexCol.String(), ascii.String())
}

// printDump writes all blocks of a card, one sector per paragraph.
// Unreadable blocks come out as a dashed row.
func printDump(w io.Writer, blocks [][]byte) {
	for i, data := range blocks {
		if i%mfrc522.BlocksPerSector == 0 {
			fmt.Fprintf(w, "-- sector %d --\n", i/mfrc522.BlocksPerSector)
		}
		if data == nil {
			fmt.Fprintf(w, "%2d  %s\n", i, strings.Repeat("-- ", mfrc522.BlockSize))
			continue
		}
		printBlock(w, byte(i), data)
	}
}
