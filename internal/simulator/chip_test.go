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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCAKnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		lo   byte
		hi   byte
	}{
		// From ISO 14443-3 annex: the HLTA frame is 50 00 57 CD.
		{name: "halt frame", data: []byte{0x50, 0x00}, lo: 0x57, hi: 0xCD},
		// A select acknowledge of 0x08 goes out as 08 B6 DD.
		{name: "sak", data: []byte{0x08}, lo: 0xB6, hi: 0xDD},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := crcA(tt.data)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestSoftResetPreservesVersion(t *testing.T) {
	t.Parallel()

	chip := New(nil)
	assert.NoError(t, chip.WriteRegister(regStatus2, 0x08))
	assert.NoError(t, chip.WriteRegister(regCommand, cmdSoftReset))

	v, err := chip.ReadRegister(regVersion)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x92), v)

	s2, err := chip.ReadRegister(regStatus2)
	assert.NoError(t, err)
	assert.Zero(t, s2)
}

func TestEmptyFieldTimesOut(t *testing.T) {
	t.Parallel()

	chip := New(nil)
	assert.NoError(t, chip.WriteRegister(regFIFOData, 0x26))
	assert.NoError(t, chip.WriteRegister(regCommand, cmdTransceive))
	assert.NoError(t, chip.WriteRegister(regBitFraming, 0x87))

	irq, err := chip.ReadRegister(regCommIrq)
	assert.NoError(t, err)
	assert.Equal(t, byte(irqTimer), irq&irqTimer)
}
