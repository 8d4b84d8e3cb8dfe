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

// Package uart provides serial transport for the MFRC522. The chip speaks
// a one-byte register protocol over UART: the address with the high bit
// set requests a read, with it clear announces a write; writes are
// acknowledged by echoing the address back.
package uart

import (
	"io"
	"time"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"go.bug.st/serial"
)

// defaultBaudRate is the chip's power-on serial speed.
const defaultBaudRate = 9600

// port is the subset of serial.Port the transport needs. Tests substitute
// a fake.
type port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Transport implements the mfrc522.Transport interface for UART communication
type Transport struct {
	port     port
	portName string
	baudRate int
}

// Option configures a Transport during New.
type Option func(*Transport)

// WithBaudRate overrides the serial speed. The chip only leaves 9600 baud
// after being told to via the serial speed register.
func WithBaudRate(baud int) Option {
	return func(t *Transport) {
		t.baudRate = baud
	}
}

// New opens the serial port at portName (for example "/dev/ttyUSB0").
func New(portName string, opts ...Option) (*Transport, error) {
	t := &Transport{portName: portName, baudRate: defaultBaudRate}
	for _, opt := range opts {
		opt(t)
	}

	mode := &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(portName, mode)
	if err != nil {
		return nil, mfrc522.NewTransportError("open serial", portName, err, mfrc522.ErrorTypePermanent)
	}
	if err := p.SetReadTimeout(100 * time.Millisecond); err != nil {
		_ = p.Close()
		return nil, mfrc522.NewTransportError("configure serial", portName, err, mfrc522.ErrorTypePermanent)
	}

	t.port = p
	return t, nil
}

// ReadRegister sends the address with the read bit set and returns the one
// byte the chip answers with.
func (t *Transport) ReadRegister(addr byte) (byte, error) {
	if _, err := t.port.Write([]byte{addr | 0x80}); err != nil {
		return 0, mfrc522.NewTransportError("uart read", t.portName, err, mfrc522.ErrorTypeTransient)
	}
	v, err := t.readByte()
	if err != nil {
		return 0, err
	}
	return v, nil
}

// WriteRegister sends the address, waits for the chip to echo it, then
// sends the value. A wrong echo means the link dropped a byte and the
// register state is unknown.
func (t *Transport) WriteRegister(addr, value byte) error {
	if _, err := t.port.Write([]byte{addr & 0x7F}); err != nil {
		return mfrc522.NewTransportError("uart write", t.portName, err, mfrc522.ErrorTypeTransient)
	}
	echo, err := t.readByte()
	if err != nil {
		return err
	}
	if echo != addr&0x7F {
		return mfrc522.NewTransportError("uart write", t.portName, mfrc522.ErrTransportWrite, mfrc522.ErrorTypeTransient)
	}
	if _, err := t.port.Write([]byte{value}); err != nil {
		return mfrc522.NewTransportError("uart write", t.portName, err, mfrc522.ErrorTypeTransient)
	}
	return nil
}

func (t *Transport) readByte() (byte, error) {
	buf := make([]byte, 1)
	n, err := t.port.Read(buf)
	if err != nil {
		return 0, mfrc522.NewTransportError("uart read", t.portName, err, mfrc522.ErrorTypeTransient)
	}
	if n == 0 {
		return 0, mfrc522.NewTimeoutError("uart read", t.portName)
	}
	return buf[0], nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	return t.port.Close()
}

// String returns the port path for error context
func (t *Transport) String() string {
	return t.portName
}

// Type returns the transport type
func (*Transport) Type() mfrc522.TransportType {
	return mfrc522.TransportUART
}
