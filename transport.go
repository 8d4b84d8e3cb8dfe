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

// Transport performs addressed register access against the MFRC522.
// Implementations own the bus handle lifecycle (open, mode, clock, word
// size) and the bus-specific address framing: SPI shifts the address left
// one bit and sets the high bit for reads, UART sets the high bit only, I2C
// uses the plain address. Each register access is a single bus transaction;
// the SPI backend performs one 2-byte full-duplex exchange per access.
//
// A Transport is exclusively owned by one Device. Register
// read-modify-write sequences span two transactions and are not atomic, so
// concurrent use through separate handles corrupts chip state.
type Transport interface {
	// ReadRegister returns the value of a 6-bit register address.
	ReadRegister(addr byte) (byte, error)

	// WriteRegister sets the value of a 6-bit register address.
	WriteRegister(addr, value byte) error

	// Close closes the transport connection
	Close() error

	// String returns the bus path for error context
	String() string

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportSPI represents SPI bus transport.
	TransportSPI TransportType = "spi"
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
