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

// Package mfrc522 drives the NXP MFRC522 13.56 MHz contactless reader IC
// and speaks the MIFARE Classic protocol through it.
//
// The package is layered the way the chip is: a Transport moves register
// reads and writes over SPI, UART or I2C; a Device programs the front end
// (timer, modulation, antenna) and runs transceive transactions; on top of
// that sit the ISO 14443A card operations (Request, Anticoll, SelectTag)
// and the MIFARE Classic memory operations (Authenticate, ReadBlock,
// WriteBlock, Halt).
//
// Basic usage:
//
//	t, err := spi.New("/dev/spidev0.0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev := mfrc522.New(t)
//	defer dev.Close()
//
//	if err := dev.Init(); err != nil {
//		log.Fatal(err)
//	}
//
//	if _, err := dev.Request(mfrc522.RequestIdle); err != nil {
//		// mfrc522.ErrNoTag: nothing in the field, poll again
//	}
//	uid, err := dev.Anticoll()
//
// A Device owns its Transport exclusively and is not safe for concurrent
// use: register read-modify-write sequences span multiple bus transactions.
//
// Errors are split by where they arise. ErrNoTag and friends are sentinel
// values for expected protocol outcomes; ChipError and FrameError report a
// failed card transaction; bus faults are unrecoverable below this layer
// and surface as panics carrying a *TransportError.
package mfrc522
