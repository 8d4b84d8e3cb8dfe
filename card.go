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

import (
	"encoding/hex"
	"fmt"
)

// MIFARE Classic 1K memory layout
const (
	// BlockSize is the fixed payload size of one block.
	BlockSize = 16
	// KeySize is the length of a Crypto1 sector key.
	KeySize = 6
	// BlocksPerSector is the number of blocks in one 1K sector.
	BlocksPerSector = 4
	// TotalBlocks is the number of blocks on a MIFARE Classic 1K card.
	TotalBlocks = 64
)

// UID is a single-cascade 4-byte card identifier plus its check byte.
// The fifth byte must equal the XOR of the first four.
type UID [5]byte

// NewUID builds a UID from four identifier bytes, computing the check byte.
func NewUID(b0, b1, b2, b3 byte) UID {
	return UID{b0, b1, b2, b3, b0 ^ b1 ^ b2 ^ b3}
}

// Checksum returns the XOR of the four identifier bytes.
func (u UID) Checksum() byte {
	return u[0] ^ u[1] ^ u[2] ^ u[3]
}

// Valid reports whether the check byte matches the identifier bytes.
func (u UID) Valid() bool {
	return u[4] == u.Checksum()
}

// String returns the four identifier bytes in hex, without the check byte.
func (u UID) String() string {
	return hex.EncodeToString(u[:4])
}

// Key is a 6-byte Crypto1 sector key.
type Key [KeySize]byte

// DefaultKey is the transport key blank MIFARE Classic cards ship with.
var DefaultKey = Key{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// IsProtectedBlock reports whether addr is the manufacturer block or a
// sector trailer. The driver refuses destructive writes to these by policy;
// the card itself does not enforce it.
func IsProtectedBlock(addr byte) bool {
	return addr == 0 || addr%BlocksPerSector == BlocksPerSector-1
}

// CardType identifies the card family reported by the select acknowledge.
type CardType int

// Card families distinguishable from the SAK byte.
const (
	TypeIncomplete CardType = iota // cascade not finished, UID incomplete
	TypeMifareMini
	TypeMifare1K
	TypeMifare4K
	TypeMifareUL
	TypeMifarePlus
	TypeTNP3xxx
	TypeISO14443_4
	TypeISO18092
	TypeUnknown
)

var cardTypeNames = map[CardType]string{
	TypeIncomplete: "incomplete UID",
	TypeMifareMini: "MIFARE Mini",
	TypeMifare1K:   "MIFARE Classic 1K",
	TypeMifare4K:   "MIFARE Classic 4K",
	TypeMifareUL:   "MIFARE Ultralight",
	TypeMifarePlus: "MIFARE Plus",
	TypeTNP3xxx:    "TNP3xxx",
	TypeISO14443_4: "ISO 14443-4",
	TypeISO18092:   "ISO 18092",
	TypeUnknown:    "unknown",
}

// String returns a human-readable card family name.
func (t CardType) String() string {
	if name, ok := cardTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CardType(%d)", int(t))
}

// ParseType maps the select acknowledge (SAK) byte to a card family.
func ParseType(sak byte) CardType {
	if sak&0x04 != 0 {
		return TypeIncomplete
	}

	switch sak {
	case 0x09:
		return TypeMifareMini
	case 0x08:
		return TypeMifare1K
	case 0x18:
		return TypeMifare4K
	case 0x00:
		return TypeMifareUL
	case 0x10, 0x11:
		return TypeMifarePlus
	case 0x01:
		return TypeTNP3xxx
	}

	if sak&0x20 != 0 {
		return TypeISO14443_4
	}
	if sak&0x40 != 0 {
		return TypeISO18092
	}
	return TypeUnknown
}
