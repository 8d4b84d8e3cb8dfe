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

import "time"

// Variant selects between the two known register programs used to bring
// the chip up. VariantA matches newer reference firmware and additionally
// clears any stale Crypto1 state and raises receiver gain; VariantB is the
// minimal classic program.
type Variant byte

const (
	VariantA Variant = 'A'
	VariantB Variant = 'B'
)

// Device drives one MFRC522 over an exclusively owned Transport.
// Device is not safe for concurrent use.
type Device struct {
	transport Transport
	variant   Variant
	poll      PollConfig
	sleep     func(time.Duration)

	// checking is set while a presence probe is in flight so the poll
	// loop uses the shorter interval.
	checking bool
}

// New wraps a transport in a Device and applies options. The chip is not
// touched until Init.
func New(transport Transport, opts ...Option) *Device {
	d := &Device{
		transport: transport,
		variant:   VariantA,
		poll:      DefaultPollConfig(),
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Close releases the underlying transport.
func (d *Device) Close() error {
	return d.transport.Close()
}

// readReg reads one register. Bus faults have no recovery path at this
// layer, so a failed access panics with the *TransportError.
func (d *Device) readReg(addr byte) byte {
	v, err := d.transport.ReadRegister(addr)
	if err != nil {
		panic(NewTransportError("read register", d.transport.String(), err, ErrorTypePermanent))
	}
	return v
}

// writeReg writes one register, panicking on bus faults like readReg.
func (d *Device) writeReg(addr, value byte) {
	if err := d.transport.WriteRegister(addr, value); err != nil {
		panic(NewTransportError("write register", d.transport.String(), err, ErrorTypePermanent))
	}
}

// setBits ORs mask into a register with a read-modify-write.
func (d *Device) setBits(addr, mask byte) {
	d.writeReg(addr, d.readReg(addr)|mask)
}

// clearBits clears mask from a register with a read-modify-write.
func (d *Device) clearBits(addr, mask byte) {
	d.writeReg(addr, d.readReg(addr)&^mask)
}

// Reset issues a soft reset and waits for the chip to settle.
func (d *Device) Reset() {
	d.writeReg(regCommand, cmdSoftReset)
	d.sleep(200 * time.Millisecond)
}

// AntennaOn enables the TX1/TX2 antenna drivers. It is a no-op when either
// driver is already on, to avoid glitching the carrier mid-session.
func (d *Device) AntennaOn() {
	if d.readReg(regTxControl)&antennaDriverBits != 0 {
		return
	}
	d.setBits(regTxControl, antennaDriverBits)
}

// AntennaOff disables the antenna drivers.
func (d *Device) AntennaOff() {
	d.clearBits(regTxControl, antennaDriverBits)
}

// Version returns the chip version register. Known silicon reads 0x91 or
// 0x92; clones commonly report 0x88, 0x90 or 0xB2.
func (d *Device) Version() byte {
	return d.readReg(regVersion)
}

// Init resets the chip and programs the timer, modulation and framing
// registers for ISO 14443A at 106 kbit/s, then turns the antenna on. A
// register write/read-back probe runs first; a mismatch means the chip is
// absent or the bus is miswired, and Init returns ErrInitFailed without
// touching anything else.
func (d *Device) Init() error {
	d.Reset()

	// Probe: the prescaler register must hold what we write. A dead bus
	// typically reads 0x00 or 0xFF here.
	d.writeReg(regTPrescaler, 0x3E)
	if d.readReg(regTPrescaler) != 0x3E {
		return ErrInitFailed
	}

	switch d.variant {
	case VariantB:
		d.writeReg(regTMode, 0x8D)
		d.writeReg(regTPrescaler, 0x3E)
		d.writeReg(regTReloadL, 30)
		d.writeReg(regTReloadH, 0)
		d.writeReg(regTxAuto, 0x40)
		d.writeReg(regMode, 0x3D)
	default:
		d.clearBits(regStatus2, status2Crypto1On)
		d.writeReg(regMode, 0x3D)
		d.writeReg(regRxSel, 0x86)
		d.writeReg(regRFCfg, 0x7F)
		d.writeReg(regTReloadL, 30)
		d.writeReg(regTReloadH, 0)
		d.writeReg(regTMode, 0x8D)
		d.writeReg(regTPrescaler, 0x3E)
		d.writeReg(regTxAuto, 0x40)
	}

	d.AntennaOn()
	debugf("init done, variant %c, version %#02x", d.variant, d.Version())
	return nil
}
