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

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by driver operations. Callers are expected to
// distinguish ErrNoTag (keep polling) from chip-reported errors (abort the
// card session) and from ErrAuthFailed (re-authenticate before retrying).
var (
	// ErrNoTag indicates the timer expired with no card answering.
	// This is the normal result of polling an empty field.
	ErrNoTag = errors.New("no tag in field")

	// ErrChecksum indicates the UID check byte did not match the XOR of
	// the four UID bytes returned by anticollision.
	ErrChecksum = errors.New("uid checksum mismatch")

	// ErrAuthFailed indicates the Crypto1 session flag was not set after
	// an authentication transaction. Reads and writes must not be
	// attempted until a later authentication succeeds.
	ErrAuthFailed = errors.New("authentication rejected by tag")

	// ErrProtectedBlock indicates a write or clean was attempted on the
	// manufacturer block or a sector trailer. The driver refuses these
	// before any bus traffic.
	ErrProtectedBlock = errors.New("block is protected")

	// ErrInvalidParameter indicates a caller-supplied argument was
	// rejected before any bus traffic.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInitFailed indicates the register self-test during Init did not
	// read back the expected value.
	ErrInitFailed = errors.New("chip initialization failed")

	// Transport-level sentinels, wrapped by TransportError.
	ErrTransportRead    = errors.New("transport read failed")
	ErrTransportWrite   = errors.New("transport write failed")
	ErrTransportTimeout = errors.New("transport timeout")
)

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may resolve by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a timeout that may resolve by retrying
	ErrorTypeTimeout
)

// ChipError reports a failed chip transaction. ErrorBits holds the masked
// contents of the error register when the chip flagged a protocol, parity,
// collision or buffer-overflow condition; it is zero when the poll budget
// lapsed without any interrupt firing. Code carries the 4-bit status nibble
// a MIFARE card returned instead of an ACK, when one was received.
type ChipError struct {
	ErrorBits byte
	IRQ       byte
	Code      byte
}

// Error implements the error interface
func (e *ChipError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("tag replied NAK %#02x", e.Code)
	case e.ErrorBits != 0:
		return fmt.Sprintf("chip error bits %#02x (irq %#02x)", e.ErrorBits, e.IRQ)
	default:
		return fmt.Sprintf("transceive poll budget exhausted (irq %#02x)", e.IRQ)
	}
}

// FrameError reports a response whose bit count does not match the fixed
// size the operation requires.
type FrameError struct {
	Op   string
	Bits int
	Want int
}

// Error implements the error interface
func (e *FrameError) Error() string {
	return fmt.Sprintf("%s: received %d bits, want %d", e.Op, e.Bits, e.Want)
}

// TransportError wraps bus-level failures with operation context.
// Bus faults have no recovery path below the register layer, so the driver
// panics with a *TransportError when one occurs mid-transaction; transports
// also return them from their constructors.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error with the given classification
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTimeoutError creates a retryable timeout transport error
func NewTimeoutError(op, port string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       ErrTransportTimeout,
		Type:      ErrorTypeTimeout,
		Retryable: true,
	}
}

// IsRetryable reports whether an operation that failed with err is worth
// repeating. NoTag and checksum noise clear on their own; chip-reported
// errors and frame-size mismatches indicate a broken card session and the
// caller should restart from discovery instead.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrNoTag),
		errors.Is(err, ErrChecksum),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportTimeout):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification of an error
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrNoTag),
		errors.Is(err, ErrChecksum),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
