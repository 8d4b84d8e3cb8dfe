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

// Package spi provides SPI transport for the MFRC522. SPI is the bus the
// common breakout boards wire out and the fastest of the three options.
package spi

import (
	"fmt"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// defaultSpeed matches the conservative clock the vendor reference uses.
// The chip tolerates up to 10 MHz, but long jumper wires on hobbyist boards
// do not.
const defaultSpeed = 100 * physic.KiloHertz

// conn is the subset of spi.Conn the transport needs. Tests substitute a
// fake.
type conn interface {
	Tx(w, r []byte) error
}

// Transport implements the mfrc522.Transport interface over SPI.
type Transport struct {
	port  spi.PortCloser
	conn  conn
	path  string
	speed physic.Frequency
}

// Option configures a Transport during New.
type Option func(*Transport)

// WithSpeed overrides the SPI clock frequency.
func WithSpeed(speed physic.Frequency) Option {
	return func(t *Transport) {
		t.speed = speed
	}
}

// New opens the SPI port at path (for example "/dev/spidev0.0", or "" for
// the first available port) in mode 0 with 8-bit words.
func New(path string, opts ...Option) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	t := &Transport{path: path, speed: defaultSpeed}
	for _, opt := range opts {
		opt(t)
	}

	port, err := spireg.Open(path)
	if err != nil {
		return nil, mfrc522.NewTransportError("open spi", path, err, mfrc522.ErrorTypePermanent)
	}

	c, err := port.Connect(t.speed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, mfrc522.NewTransportError("connect spi", path, err, mfrc522.ErrorTypePermanent)
	}

	t.port = port
	t.conn = c
	return t, nil
}

// ReadRegister reads one register with a 2-byte full-duplex exchange: the
// address byte shifted left with the read bit set, then a dummy byte
// clocking the value out.
func (t *Transport) ReadRegister(addr byte) (byte, error) {
	w := []byte{(addr<<1)&0xFE | 0x80, 0x00}
	r := make([]byte, 2)
	if err := t.conn.Tx(w, r); err != nil {
		return 0, mfrc522.NewTransportError("spi read", t.path, err, mfrc522.ErrorTypeTransient)
	}
	return r[1], nil
}

// WriteRegister writes one register: the shifted address with the read bit
// clear, then the value.
func (t *Transport) WriteRegister(addr, value byte) error {
	w := []byte{(addr << 1) & 0x7E, value}
	r := make([]byte, 2)
	if err := t.conn.Tx(w, r); err != nil {
		return mfrc522.NewTransportError("spi write", t.path, err, mfrc522.ErrorTypeTransient)
	}
	return nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	return t.port.Close()
}

// String returns the bus path for error context
func (t *Transport) String() string {
	return t.path
}

// Type returns the transport type
func (*Transport) Type() mfrc522.TransportType {
	return mfrc522.TransportSPI
}
