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

// MFRC522 command set (CommandReg values)
const (
	cmdIdle         = 0x00 // cancel any running command
	cmdCalcCRC      = 0x03 // run the CRC coprocessor over the FIFO
	cmdTransmit     = 0x04
	cmdReceive      = 0x08
	cmdTransceive   = 0x0C // transmit FIFO, then receive into FIFO
	cmdAuthenticate = 0x0E // MIFARE Crypto1 authentication
	cmdSoftReset    = 0x0F
)

// PICC (card-side) command set. The request modes and authentication modes
// are part of the public API; the rest are driver-internal frame bytes.
const (
	// RequestIdle wakes cards in the idle state (REQA short frame).
	RequestIdle byte = 0x26
	// RequestAll wakes all cards in the field, including halted ones (WUPA).
	RequestAll byte = 0x52

	// AuthKeyA selects Crypto1 authentication with key A.
	AuthKeyA byte = 0x60
	// AuthKeyB selects Crypto1 authentication with key B.
	AuthKeyB byte = 0x61

	piccAnticoll  = 0x93
	piccSelect    = 0x93
	piccRead      = 0x30
	piccWrite     = 0xA0
	piccDecrement = 0xC0
	piccIncrement = 0xC1
	piccRestore   = 0xC2
	piccTransfer  = 0xB0
	piccHalt      = 0x50
)

// Register map. Addresses are 6 bits, grouped by the datasheet into four
// pages; the pages have no addressing significance beyond grouping.
const (
	// Page 0: command and status
	regCommand    = 0x01
	regCommIEn    = 0x02
	regDivIEn     = 0x03
	regCommIrq    = 0x04
	regDivIrq     = 0x05
	regError      = 0x06
	regStatus1    = 0x07
	regStatus2    = 0x08
	regFIFOData   = 0x09
	regFIFOLevel  = 0x0A
	regWaterLevel = 0x0B
	regControl    = 0x0C
	regBitFraming = 0x0D
	regColl       = 0x0E

	// Page 1: communication configuration
	regMode        = 0x11
	regTxMode      = 0x12
	regRxMode      = 0x13
	regTxControl   = 0x14
	regTxAuto      = 0x15
	regTxSel       = 0x16
	regRxSel       = 0x17
	regRxThreshold = 0x18
	regDemod       = 0x19
	regMifare      = 0x1C
	regSerialSpeed = 0x1F

	// Page 2: CFG
	regCRCResultM   = 0x21
	regCRCResultL   = 0x22
	regModWidth     = 0x24
	regRFCfg        = 0x26
	regGsN          = 0x27
	regCWGsP        = 0x28
	regModGsP       = 0x29
	regTMode        = 0x2A
	regTPrescaler   = 0x2B
	regTReloadH     = 0x2C
	regTReloadL     = 0x2D
	regTCounterValH = 0x2E
	regTCounterValL = 0x2F

	// Page 3: test
	regTestSel1     = 0x31
	regTestSel2     = 0x32
	regTestPinEn    = 0x33
	regTestPinValue = 0x34
	regTestBus      = 0x35
	regAutoTest     = 0x36
	regVersion      = 0x37
	regAnalogTest   = 0x38
	regTestDAC1     = 0x39
	regTestDAC2     = 0x3A
	regTestADC      = 0x3B
)

// Interrupt and status bit masks
const (
	// CommIEnReg / CommIrqReg
	irqInv   = 0x80 // CommIEnReg bit 7: inverted IRQ pin polarity
	irqSet1  = 0x80 // CommIrqReg bit 7: set/clear selector on write
	irqTimer = 0x01 // TimerIRq: timer ran down to zero

	// Interrupt enable and wait masks per command kind. Authentication
	// monitors a narrower set than a generic transceive.
	irqEnAuth         = 0x12 // IdleIRq | ErrIRq
	waitIrqAuth       = 0x10 // IdleIRq
	irqEnTransceive   = 0x77 // TxIRq | RxIRq | IdleIRq | LoAlertIRq | ErrIRq | TimerIRq
	waitIrqTransceive = 0x30 // RxIRq | IdleIRq

	// DivIrqReg
	divIrqCRC = 0x04 // CRCIRq: CRC coprocessor finished

	// ErrorReg bits that fail a transaction:
	// BufferOvfl | CollErr | ParityErr | ProtocolErr
	errMask = 0x1B

	// Status2Reg
	status2Crypto1On = 0x08 // MFCrypto1On: Crypto1 session active

	// FIFOLevelReg
	fifoFlush = 0x80

	// BitFramingReg
	startSend      = 0x80
	txLastBitsMask = 0x07
	shortFrame     = 0x07 // 7-bit frames for REQA/WUPA

	// ControlReg
	rxLastBitsMask = 0x07 // valid bits in the last received byte

	// TxControlReg
	antennaDriverBits = 0x03 // Tx1RFEn | Tx2RFEn
)

// fifoCapacity is the largest number of bytes drained from the chip FIFO in
// one transaction. The hardware FIFO is 64 bytes, but MIFARE Classic frames
// never exceed 18 bytes and the driver caps reads at 16, matching the
// vendor reference behavior.
const fifoCapacity = 16
