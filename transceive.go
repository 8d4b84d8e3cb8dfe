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

// Result holds a card's answer to a transceive transaction. Bits counts the
// exact number of bits received; short frames such as the 4-bit write ACK
// arrive with Bits not divisible by eight, and Data then carries the partial
// final byte in its low bits.
type Result struct {
	Data []byte
	Bits int
}

// transceive runs one chip command with send loaded into the FIFO and waits
// for completion. cmd is cmdTransceive or cmdAuthenticate; the two use
// different interrupt sets because authentication finishes with an idle
// interrupt and returns no data.
//
// Outcomes are classified strictly in this order: budget exhausted, chip
// error bits, timer-only interrupt (no card answered), success.
func (d *Device) transceive(cmd byte, send []byte) (Result, error) {
	var irqEn, waitIrq byte
	switch cmd {
	case cmdAuthenticate:
		irqEn, waitIrq = irqEnAuth, waitIrqAuth
	case cmdTransceive:
		irqEn, waitIrq = irqEnTransceive, waitIrqTransceive
	default:
		return Result{}, ErrInvalidParameter
	}

	d.writeReg(regCommIEn, irqEn|irqInv)
	d.clearBits(regCommIrq, irqSet1)
	d.setBits(regFIFOLevel, fifoFlush)
	d.writeReg(regCommand, cmdIdle)

	for _, b := range send {
		d.writeReg(regFIFOData, b)
	}
	d.writeReg(regCommand, cmd)
	if cmd == cmdTransceive {
		d.setBits(regBitFraming, startSend)
	}

	interval := d.poll.Interval
	if d.checking {
		interval = d.poll.CheckInterval
	}
	irq, done := waitReg(d.poll.Budget, interval, d.sleep,
		func() byte { return d.readReg(regCommIrq) },
		func(v byte) bool { return v&irqTimer != 0 || v&waitIrq != 0 })

	d.clearBits(regBitFraming, startSend)

	if !done {
		debugf("transceive %#02x: poll budget exhausted, irq %#02x", cmd, irq)
		return Result{}, &ChipError{IRQ: irq}
	}
	if bits := d.readReg(regError) & errMask; bits != 0 {
		debugf("transceive %#02x: error bits %#02x", cmd, bits)
		return Result{}, &ChipError{ErrorBits: bits, IRQ: irq}
	}
	if irq&irqEn&irqTimer != 0 {
		return Result{}, ErrNoTag
	}

	if cmd != cmdTransceive {
		return Result{}, nil
	}

	n := int(d.readReg(regFIFOLevel))
	lastBits := int(d.readReg(regControl) & rxLastBitsMask)

	var res Result
	if lastBits != 0 {
		res.Bits = (n-1)*8 + lastBits
	} else {
		res.Bits = n * 8
	}

	// The FIFO level can report 0 on an empty answer or values past the
	// buffer on overflow; clamp so we always drain a sane byte count.
	if n == 0 {
		n = 1
	}
	if n > fifoCapacity {
		n = fifoCapacity
	}
	res.Data = make([]byte, n)
	for i := range res.Data {
		res.Data[i] = d.readReg(regFIFOData)
	}

	debugf("transceive %#02x: %d bits in %d bytes", cmd, res.Bits, n)
	return res, nil
}
