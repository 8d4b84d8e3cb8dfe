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

package detection

import (
	"testing"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"github.com/stretchr/testify/assert"
)

func TestTransportForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want mfrc522.TransportType
	}{
		{name: "spi device", path: "/dev/spidev0.0", want: mfrc522.TransportSPI},
		{name: "second spi bus", path: "/dev/spidev1.2", want: mfrc522.TransportSPI},
		{name: "i2c bus", path: "/dev/i2c-1", want: mfrc522.TransportI2C},
		{name: "usb serial", path: "/dev/ttyUSB0", want: mfrc522.TransportUART},
		{name: "pi uart", path: "/dev/ttyAMA0", want: mfrc522.TransportUART},
		{name: "unrecognized falls back to uart", path: "/dev/rfcomm0", want: mfrc522.TransportUART},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TransportForPath(tt.path))
		})
	}
}

func TestIsKnownVersion(t *testing.T) {
	t.Parallel()

	for _, v := range []byte{0x88, 0x90, 0x91, 0x92, 0xB2} {
		assert.True(t, IsKnownVersion(v), "version %#02x", v)
	}
	for _, v := range []byte{0x00, 0xFF, 0x12} {
		assert.False(t, IsKnownVersion(v), "version %#02x", v)
	}
}

func TestDetectAllReturnsConsistentEntries(t *testing.T) {
	t.Parallel()

	for _, dev := range DetectAll() {
		assert.NotEmpty(t, dev.Path)
		assert.Contains(t, []mfrc522.TransportType{
			mfrc522.TransportSPI,
			mfrc522.TransportI2C,
			mfrc522.TransportUART,
		}, dev.Transport)
	}
}
