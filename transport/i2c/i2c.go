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

// Package i2c provides I2C transport for the MFRC522. On I2C the register
// address goes on the wire unshifted; the direction comes from the bus
// transaction itself.
package i2c

import (
	"fmt"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// defaultAddr is the MFRC522 slave address with the EA pin high and
	// the address pins grounded.
	defaultAddr = 0x28

	maxClockFreq = 400 * physic.KiloHertz
)

// device is the subset of i2c.Dev the transport needs. Tests substitute a
// fake.
type device interface {
	Tx(w, r []byte) error
}

// Transport implements the mfrc522.Transport interface for I2C communication
type Transport struct {
	bus     i2c.BusCloser
	dev     device
	busName string
	addr    uint16
}

// Option configures a Transport during New.
type Option func(*Transport)

// WithAddress overrides the chip slave address, set by the chip's address
// pins.
func WithAddress(addr uint16) Option {
	return func(t *Transport) {
		t.addr = addr
	}
}

// New opens the I2C bus at busName (for example "/dev/i2c-1", or "" for
// the first available bus).
func New(busName string, opts ...Option) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	t := &Transport{busName: busName, addr: defaultAddr}
	for _, opt := range opts {
		opt(t)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, mfrc522.NewTransportError("open i2c", busName, err, mfrc522.ErrorTypePermanent)
	}
	_ = bus.SetSpeed(maxClockFreq) // Ignore error, continue with default speed

	t.bus = bus
	t.dev = &i2c.Dev{Addr: t.addr, Bus: bus}
	return t, nil
}

// ReadRegister writes the register address, then reads one byte back.
func (t *Transport) ReadRegister(addr byte) (byte, error) {
	r := make([]byte, 1)
	if err := t.dev.Tx([]byte{addr}, r); err != nil {
		return 0, mfrc522.NewTransportError("i2c read", t.busName, err, mfrc522.ErrorTypeTransient)
	}
	return r[0], nil
}

// WriteRegister writes the register address followed by the value.
func (t *Transport) WriteRegister(addr, value byte) error {
	if err := t.dev.Tx([]byte{addr, value}, nil); err != nil {
		return mfrc522.NewTransportError("i2c write", t.busName, err, mfrc522.ErrorTypeTransient)
	}
	return nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	if t.bus == nil {
		return nil
	}
	return t.bus.Close()
}

// String returns the bus path for error context
func (t *Transport) String() string {
	return t.busName
}

// Type returns the transport type
func (*Transport) Type() mfrc522.TransportType {
	return mfrc522.TransportI2C
}
