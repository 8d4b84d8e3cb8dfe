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

package simulator

import (
	"bytes"

	"github.com/cardforge/go-mfrc522"
)

// Card is a virtual MIFARE Classic 1K tag. It answers the subset of ISO
// 14443A and MIFARE commands the driver issues: REQA/WUPA, cascade level 1
// anticollision and select, Crypto1 authentication, block read, two-phase
// block write and halt.
type Card struct {
	uid    mfrc522.UID
	keyA   mfrc522.Key
	blocks [mfrc522.TotalBlocks][mfrc522.BlockSize]byte
	sak    byte

	halted bool
	// pendingWrite holds the block address between the two write phases,
	// or -1 when no write is in flight.
	pendingWrite int
}

// NewCard creates a blank 1K card with the given UID, protected by key A.
// Block 0 carries the UID bytes the way manufacturer data does.
func NewCard(uid mfrc522.UID, keyA mfrc522.Key) *Card {
	c := &Card{
		uid:          uid,
		keyA:         keyA,
		sak:          0x08,
		pendingWrite: -1,
	}
	copy(c.blocks[0][:], uid[:])
	return c
}

// SetBlock seeds the contents of a block.
func (c *Card) SetBlock(addr byte, data []byte) {
	copy(c.blocks[addr][:], data)
}

// Block returns the contents of a block.
func (c *Card) Block(addr byte) []byte {
	return append([]byte(nil), c.blocks[addr][:]...)
}

// Halted reports whether the card is in the halt state.
func (c *Card) Halted() bool {
	return c.halted
}

// authenticate checks a 12-byte Crypto1 authentication frame: mode, block
// address, 6 key bytes, 4 UID bytes.
func (c *Card) authenticate(frame []byte) bool {
	if len(frame) != 12 {
		return false
	}
	if frame[0] != mfrc522.AuthKeyA {
		// Key B is not provisioned on the virtual card.
		return false
	}
	return bytes.Equal(frame[2:8], c.keyA[:]) && bytes.Equal(frame[8:12], c.uid[:4])
}

// respond answers one transmitted frame. txBits is the BitFraming short
// frame length (0 for full bytes); crypto reports whether the reader side
// Crypto1 unit is engaged. The returned bit count includes any partial
// final byte.
func (c *Card) respond(frame []byte, txBits int, crypto bool) (resp []byte, bits int, answered bool) {
	// Second phase of a block write: 16 data bytes plus CRC.
	if c.pendingWrite >= 0 && len(frame) == mfrc522.BlockSize+2 {
		addr := c.pendingWrite
		c.pendingWrite = -1
		if !crypto || !c.checkCRC(frame) {
			return nil, 0, false
		}
		copy(c.blocks[addr][:], frame[:mfrc522.BlockSize])
		return []byte{0x0A}, 4, true
	}
	c.pendingWrite = -1

	if txBits == 7 && len(frame) == 1 {
		return c.request(frame[0])
	}

	switch {
	case bytes.Equal(frame, []byte{0x93, 0x20}):
		if c.halted {
			return nil, 0, false
		}
		return c.uid[:], 40, true

	case len(frame) == 9 && frame[0] == 0x93 && frame[1] == 0x70:
		if c.halted || !bytes.Equal(frame[2:7], c.uid[:]) || !c.checkCRC(frame) {
			return nil, 0, false
		}
		lo, hi := crcA([]byte{c.sak})
		return []byte{c.sak, lo, hi}, 24, true

	case len(frame) == 4 && frame[0] == 0x30:
		if c.halted || !crypto || !c.checkCRC(frame) {
			return nil, 0, false
		}
		data := c.blocks[frame[1]&0x3F][:]
		lo, hi := crcA(data)
		out := append(append([]byte(nil), data...), lo, hi)
		return out, len(out) * 8, true

	case len(frame) == 4 && frame[0] == 0xA0:
		if c.halted || !crypto || !c.checkCRC(frame) {
			return nil, 0, false
		}
		c.pendingWrite = int(frame[1] & 0x3F)
		return []byte{0x0A}, 4, true

	case len(frame) == 4 && frame[0] == 0x50 && frame[1] == 0x00:
		if c.checkCRC(frame) {
			c.halted = true
		}
		// Halted cards do not acknowledge.
		return nil, 0, false
	}

	return nil, 0, false
}

// request answers the 7-bit REQA/WUPA probes. Halted cards ignore REQA but
// wake on WUPA.
func (c *Card) request(mode byte) ([]byte, int, bool) {
	switch mode {
	case mfrc522.RequestIdle:
		if c.halted {
			return nil, 0, false
		}
	case mfrc522.RequestAll:
		c.halted = false
	default:
		return nil, 0, false
	}
	// ATQA for a 4-byte UID MIFARE Classic 1K.
	return []byte{0x04, 0x00}, 16, true
}

// checkCRC verifies the trailing CRC_A of a frame.
func (c *Card) checkCRC(frame []byte) bool {
	n := len(frame) - 2
	lo, hi := crcA(frame[:n])
	return frame[n] == lo && frame[n+1] == hi
}
