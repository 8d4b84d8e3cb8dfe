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

// Package simulator models an MFRC522 at the register level with a virtual
// MIFARE Classic 1K card in its field. It implements the package transport
// interface, so the full driver stack runs against it unchanged in tests.
package simulator

import (
	"github.com/cardforge/go-mfrc522"
)

// Register and command numbers mirrored from the chip datasheet. The
// simulator keeps its own copies; the driver's are unexported.
const (
	regCommand    = 0x01
	regCommIrq    = 0x04
	regDivIrq     = 0x05
	regError      = 0x06
	regStatus2    = 0x08
	regFIFOData   = 0x09
	regFIFOLevel  = 0x0A
	regControl    = 0x0C
	regBitFraming = 0x0D
	regCRCResultM = 0x21
	regCRCResultL = 0x22
	regVersion    = 0x37

	cmdIdle         = 0x00
	cmdCalcCRC      = 0x03
	cmdTransceive   = 0x0C
	cmdAuthenticate = 0x0E
	cmdSoftReset    = 0x0F

	irqTimer = 0x01
	irqIdle  = 0x10
	irqRxTx  = 0x30
	crcIrq   = 0x04
)

// Chip is a synchronous register-level MFRC522 model. Commands execute to
// completion during the register write that starts them, so interrupt flags
// are already set when the driver's poll loop first looks.
//
// Chip is not safe for concurrent use, matching the exclusivity contract of
// the real transports.
type Chip struct {
	regs [64]byte
	// fifo holds bytes written by the host until a command consumes them,
	// then the card's answer until the host drains it.
	fifo []byte
	card *Card
	sent [][]byte
}

// New creates a powered-up chip with card in its field. A nil card leaves
// the field empty, so every transceive times out.
func New(card *Card) *Chip {
	c := &Chip{card: card}
	c.regs[regVersion] = 0x92
	return c
}

// SentFrames returns every frame transmitted into the field, including
// authentication frames, in order.
func (c *Chip) SentFrames() [][]byte {
	return c.sent
}

// Card returns the card in the field, or nil.
func (c *Chip) Card() *Card {
	return c.card
}

// ReadRegister implements the driver transport interface.
func (c *Chip) ReadRegister(addr byte) (byte, error) {
	switch addr {
	case regFIFOData:
		if len(c.fifo) == 0 {
			return 0, nil
		}
		v := c.fifo[0]
		c.fifo = c.fifo[1:]
		return v, nil
	case regFIFOLevel:
		return byte(len(c.fifo)), nil
	default:
		return c.regs[addr&0x3F], nil
	}
}

// WriteRegister implements the driver transport interface.
func (c *Chip) WriteRegister(addr, value byte) error {
	switch addr {
	case regCommIrq, regDivIrq:
		// Set1 semantics: bit 7 selects whether the written bits are
		// set or cleared in the pending flags.
		if value&0x80 != 0 {
			c.regs[addr] |= value & 0x7F
		} else {
			c.regs[addr] &^= value & 0x7F
		}
	case regFIFOLevel:
		if value&0x80 != 0 {
			c.fifo = nil
		}
	case regFIFOData:
		c.fifo = append(c.fifo, value)
	case regBitFraming:
		c.regs[addr] = value
		if value&0x80 != 0 && c.regs[regCommand] == cmdTransceive {
			c.transmit()
		}
	case regCommand:
		c.regs[addr] = value
		c.execute(value)
	default:
		c.regs[addr&0x3F] = value
	}
	return nil
}

// Close implements the driver transport interface.
func (c *Chip) Close() error {
	return nil
}

// String implements the driver transport interface.
func (c *Chip) String() string {
	return "simulator"
}

// Type implements the driver transport interface.
func (c *Chip) Type() mfrc522.TransportType {
	return mfrc522.TransportMock
}

func (c *Chip) execute(cmd byte) {
	switch cmd {
	case cmdSoftReset:
		version := c.regs[regVersion]
		c.regs = [64]byte{}
		c.regs[regVersion] = version
		c.fifo = nil
	case cmdCalcCRC:
		lo, hi := crcA(c.fifo)
		c.fifo = nil
		c.regs[regCRCResultL] = lo
		c.regs[regCRCResultM] = hi
		c.regs[regDivIrq] |= crcIrq
	case cmdAuthenticate:
		frame := c.takeFrame()
		if c.card != nil && c.card.authenticate(frame) {
			c.regs[regStatus2] |= 0x08
			c.regs[regCommIrq] |= irqIdle
		} else {
			c.regs[regStatus2] &^= 0x08
			c.regs[regCommIrq] |= irqTimer
		}
	case cmdTransceive, cmdIdle:
		// transceive starts on the BitFraming StartSend bit
	}
}

func (c *Chip) transmit() {
	frame := c.takeFrame()
	txBits := int(c.regs[regBitFraming] & 0x07)
	c.regs[regError] = 0

	if c.card == nil {
		c.regs[regCommIrq] |= irqTimer
		return
	}

	resp, bits, answered := c.card.respond(frame, txBits, c.regs[regStatus2]&0x08 != 0)
	if !answered {
		c.regs[regCommIrq] |= irqTimer
		return
	}

	c.fifo = resp
	c.regs[regControl] = byte(bits % 8)
	c.regs[regCommIrq] |= irqRxTx
}

func (c *Chip) takeFrame() []byte {
	frame := append([]byte(nil), c.fifo...)
	c.fifo = nil
	c.sent = append(c.sent, frame)
	return frame
}

// crcA computes ISO 14443A CRC_A, returned low byte first.
func crcA(data []byte) (lo, hi byte) {
	crc := uint16(0x6363)
	for _, d := range data {
		b := d ^ byte(crc)
		b ^= b << 4
		crc = crc>>8 ^ uint16(b)<<8 ^ uint16(b)<<3 ^ uint16(b)>>4
	}
	return byte(crc), byte(crc >> 8)
}
