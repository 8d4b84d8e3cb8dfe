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

import "bytes"

// writeACK is the 4-bit acknowledge nibble a MIFARE card returns for an
// accepted write phase. Any other nibble is a status code.
const writeACK = 0x0A

// Request probes the field with a 7-bit short frame. mode is RequestIdle
// (REQA) or RequestAll (WUPA). On success the two ATQA bytes are returned;
// any answer that is not exactly 16 bits long is rejected.
func (d *Device) Request(mode byte) ([]byte, error) {
	d.writeReg(regBitFraming, shortFrame)

	res, err := d.transceive(cmdTransceive, []byte{mode})
	if err != nil {
		return nil, err
	}
	if res.Bits != 16 {
		return nil, &FrameError{Op: "request", Bits: res.Bits, Want: 16}
	}
	return res.Data, nil
}

// Anticoll runs cascade level 1 anticollision and returns the single UID
// that survives, verifying its XOR check byte.
func (d *Device) Anticoll() (UID, error) {
	d.writeReg(regBitFraming, 0)

	res, err := d.transceive(cmdTransceive, []byte{piccAnticoll, 0x20})
	if err != nil {
		return UID{}, err
	}
	if len(res.Data) != 5 {
		return UID{}, &FrameError{Op: "anticoll", Bits: res.Bits, Want: 40}
	}

	var uid UID
	copy(uid[:], res.Data)
	if !uid.Valid() {
		debugf("anticoll: bad check byte %#02x for uid %s", uid[4], uid)
		return UID{}, ErrChecksum
	}
	return uid, nil
}

// SelectTag selects the card with the given UID and returns its select
// acknowledge byte. The card moves to the active state and will answer
// memory commands afterwards.
func (d *Device) SelectTag(uid UID) (byte, error) {
	frame := append([]byte{piccSelect, 0x70}, uid[:]...)
	frame = d.appendCRC(frame)

	res, err := d.transceive(cmdTransceive, frame)
	if err != nil {
		return 0, err
	}
	// SAK is one byte plus CRC_A.
	if res.Bits != 24 {
		return 0, &FrameError{Op: "select", Bits: res.Bits, Want: 24}
	}
	return res.Data[0], nil
}

// Authenticate opens a Crypto1 session for the sector containing block.
// mode is AuthKeyA or AuthKeyB. The chip only reports the handshake
// complete; whether the key was right shows up in the Crypto1 status flag,
// which is checked here.
func (d *Device) Authenticate(mode, block byte, key Key, uid UID) error {
	frame := make([]byte, 0, 2+KeySize+4)
	frame = append(frame, mode, block)
	frame = append(frame, key[:]...)
	frame = append(frame, uid[:4]...)

	if _, err := d.transceive(cmdAuthenticate, frame); err != nil {
		return err
	}
	if d.readReg(regStatus2)&status2Crypto1On == 0 {
		return ErrAuthFailed
	}
	return nil
}

// StopCrypto1 ends the current Crypto1 session. Required before the card
// will answer another authentication.
func (d *Device) StopCrypto1() {
	d.clearBits(regStatus2, status2Crypto1On)
}

// ReadBlock returns the 16 bytes of an authenticated block.
func (d *Device) ReadBlock(addr byte) ([]byte, error) {
	frame := d.appendCRC([]byte{piccRead, addr})

	res, err := d.transceive(cmdTransceive, frame)
	if err != nil {
		return nil, err
	}
	// 16 data bytes plus CRC_A.
	if res.Bits != 144 {
		return nil, &FrameError{Op: "read block", Bits: res.Bits, Want: 144}
	}
	return res.Data[:BlockSize], nil
}

// WriteBlock writes 16 bytes to an authenticated block. The manufacturer
// block and sector trailers are refused before any bus traffic; overwriting
// a trailer with unknown access bits bricks the sector.
//
// The exchange is two-phase: the write command must be acknowledged before
// the data is sent, and the data again afterwards. A card that answers a
// phase with a status nibble instead of an ACK yields a ChipError carrying
// that nibble.
func (d *Device) WriteBlock(addr byte, data []byte) error {
	if IsProtectedBlock(addr) {
		return ErrProtectedBlock
	}
	if len(data) != BlockSize {
		return ErrInvalidParameter
	}

	if err := d.writePhase("write command", d.appendCRC([]byte{piccWrite, addr})); err != nil {
		return err
	}
	return d.writePhase("write data", d.appendCRC(append([]byte(nil), data...)))
}

func (d *Device) writePhase(op string, frame []byte) error {
	res, err := d.transceive(cmdTransceive, frame)
	if err != nil {
		return err
	}
	if res.Bits == 4 {
		if nibble := res.Data[0] & 0x0F; nibble != writeACK {
			return &ChipError{Code: nibble}
		}
		return nil
	}
	return &FrameError{Op: op, Bits: res.Bits, Want: 4}
}

// CleanBlock zeroes a data block. Protected blocks are refused like
// WriteBlock.
func (d *Device) CleanBlock(addr byte) error {
	return d.WriteBlock(addr, make([]byte, BlockSize))
}

// Compare reads an authenticated block and reports whether its contents
// equal data. Used to verify writes.
func (d *Device) Compare(addr byte, data []byte) (bool, error) {
	got, err := d.ReadBlock(addr)
	if err != nil {
		return false, err
	}
	return bytes.Equal(got, data), nil
}

// Halt tells the selected card to stop answering REQA until it leaves and
// re-enters the field or receives a WUPA. Halted cards routinely do not
// acknowledge the command, so its outcome is discarded.
func (d *Device) Halt() {
	frame := d.appendCRC([]byte{piccHalt, 0})
	if _, err := d.transceive(cmdTransceive, frame); err != nil {
		debugf("halt: %v", err)
	}
}

// Check probes whether a card is still present and reachable. It tears down
// any Crypto1 session, wakes the field with WUPA so halted cards answer
// too, and re-runs anticollision. The shorter presence-check poll interval
// is used for the duration.
func (d *Device) Check() (UID, error) {
	d.StopCrypto1()

	d.checking = true
	defer func() { d.checking = false }()

	if _, err := d.Request(RequestAll); err != nil {
		return UID{}, err
	}
	return d.Anticoll()
}

// ReadSector authenticates the sector with key A and returns its four
// blocks in order.
func (d *Device) ReadSector(sector byte, key Key, uid UID) ([][]byte, error) {
	if int(sector) >= TotalBlocks/BlocksPerSector {
		return nil, ErrInvalidParameter
	}

	base := sector * BlocksPerSector
	if err := d.Authenticate(AuthKeyA, base, key, uid); err != nil {
		return nil, err
	}

	blocks := make([][]byte, BlocksPerSector)
	for i := range blocks {
		data, err := d.ReadBlock(base + byte(i))
		if err != nil {
			return nil, err
		}
		blocks[i] = data
	}
	return blocks, nil
}

// DumpClassic1K reads all 64 blocks of a MIFARE Classic 1K card with key A.
// Blocks whose sector fails authentication or read are left nil rather than
// aborting the dump, matching how card dump tools behave against cards with
// mixed keys.
func (d *Device) DumpClassic1K(key Key, uid UID) [][]byte {
	blocks := make([][]byte, TotalBlocks)
	for sector := 0; sector < TotalBlocks/BlocksPerSector; sector++ {
		base := byte(sector * BlocksPerSector)
		if err := d.Authenticate(AuthKeyA, base, key, uid); err != nil {
			debugf("dump: sector %d auth: %v", sector, err)
			continue
		}
		for i := byte(0); i < BlocksPerSector; i++ {
			data, err := d.ReadBlock(base + i)
			if err != nil {
				debugf("dump: block %d read: %v", base+i, err)
				continue
			}
			blocks[base+i] = data
		}
	}
	return blocks
}
