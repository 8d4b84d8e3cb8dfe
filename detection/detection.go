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

// Package detection enumerates buses an MFRC522 could sit on and maps
// device paths to transport types.
package detection

import (
	"path/filepath"
	"strings"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"go.bug.st/serial"
)

// DeviceInfo describes one candidate bus endpoint.
type DeviceInfo struct {
	Path      string
	Transport mfrc522.TransportType
}

// knownVersions are version register values reported by genuine silicon
// and the common clones. Anything else usually means a wiring problem
// rather than an exotic chip.
var knownVersions = map[byte]bool{
	0x88: true, // FM17522 clone
	0x90: true, // version 0.0
	0x91: true, // version 1.0
	0x92: true, // version 2.0
	0xB2: true, // FM17522E clone
}

// IsKnownVersion reports whether v is a version register value an MFRC522
// or a known clone reports.
func IsKnownVersion(v byte) bool {
	return knownVersions[v]
}

// DetectAll enumerates SPI ports, I2C buses and serial ports present on
// the host, in that order of preference. Enumeration failures on one bus
// kind do not hide the others.
func DetectAll() []DeviceInfo {
	var devices []DeviceInfo

	spiPaths, _ := filepath.Glob("/dev/spidev*")
	for _, p := range spiPaths {
		devices = append(devices, DeviceInfo{Path: p, Transport: mfrc522.TransportSPI})
	}

	i2cPaths, _ := filepath.Glob("/dev/i2c-*")
	for _, p := range i2cPaths {
		devices = append(devices, DeviceInfo{Path: p, Transport: mfrc522.TransportI2C})
	}

	ports, err := serial.GetPortsList()
	if err != nil {
		return devices
	}
	for _, p := range ports {
		devices = append(devices, DeviceInfo{Path: p, Transport: mfrc522.TransportUART})
	}
	return devices
}

// TransportForPath classifies a device path by its name. Paths that match
// no known pattern default to UART, which covers USB serial adapters with
// platform-specific names.
func TransportForPath(path string) mfrc522.TransportType {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "spidev"):
		return mfrc522.TransportSPI
	case strings.HasPrefix(base, "i2c-"):
		return mfrc522.TransportI2C
	default:
		return mfrc522.TransportUART
	}
}
