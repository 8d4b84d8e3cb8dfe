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
	"fmt"
	"sync"
)

// RegisterOp records one register access made through a MockTransport.
type RegisterOp struct {
	Write bool
	Addr  byte
	Value byte
}

// MockTransport implements Transport against an in-memory register map for
// unit tests. Reads normally return the stored register value; QueueRead
// installs a per-register FIFO of values consumed before the stored value,
// which is how tests script interrupt flags appearing over successive
// polls. Every access is recorded for trace assertions.
type MockTransport struct {
	mu      sync.Mutex
	regs    [64]byte
	queues  map[byte][]byte
	ops     []RegisterOp
	readErr error
	wrtErr  error
	closed  bool
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{queues: make(map[byte][]byte)}
}

// ReadRegister implements Transport.
func (m *MockTransport) ReadRegister(addr byte) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return 0, m.readErr
	}

	v := m.regs[addr&0x3F]
	if q := m.queues[addr]; len(q) > 0 {
		v = q[0]
		m.queues[addr] = q[1:]
	}
	m.ops = append(m.ops, RegisterOp{Addr: addr, Value: v})
	return v, nil
}

// WriteRegister implements Transport.
func (m *MockTransport) WriteRegister(addr, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.wrtErr != nil {
		return m.wrtErr
	}

	m.regs[addr&0x3F] = value
	m.ops = append(m.ops, RegisterOp{Write: true, Addr: addr, Value: value})
	return nil
}

// Close implements Transport.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// String implements Transport.
func (m *MockTransport) String() string {
	return "mock"
}

// Type implements Transport.
func (m *MockTransport) Type() TransportType {
	return TransportMock
}

// SetRegister seeds the stored value of a register.
func (m *MockTransport) SetRegister(addr, value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[addr&0x3F] = value
}

// Register returns the stored value of a register.
func (m *MockTransport) Register(addr byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[addr&0x3F]
}

// QueueRead scripts the next reads of addr to return values in order,
// ahead of the stored register value.
func (m *MockTransport) QueueRead(addr byte, values ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[addr] = append(m.queues[addr], values...)
}

// SetReadError makes every subsequent read fail with err.
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetWriteError makes every subsequent write fail with err.
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wrtErr = err
}

// Ops returns a copy of every recorded register access in order.
func (m *MockTransport) Ops() []RegisterOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RegisterOp(nil), m.ops...)
}

// Writes returns only the recorded writes, in order.
func (m *MockTransport) Writes() []RegisterOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	var w []RegisterOp
	for _, op := range m.ops {
		if op.Write {
			w = append(w, op)
		}
	}
	return w
}

// WritesTo returns the values written to addr, in order.
func (m *MockTransport) WritesTo(addr byte) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var vals []byte
	for _, op := range m.ops {
		if op.Write && op.Addr == addr {
			vals = append(vals, op.Value)
		}
	}
	return vals
}

// Calls returns the total number of register accesses.
func (m *MockTransport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ops)
}

// Closed reports whether Close was called.
func (m *MockTransport) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Reset clears recorded operations and scripted reads, keeping register
// values.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
	m.queues = make(map[byte][]byte)
}

// String formats one recorded access for test failure messages.
func (op RegisterOp) String() string {
	if op.Write {
		return fmt.Sprintf("W %#02x=%#02x", op.Addr, op.Value)
	}
	return fmt.Sprintf("R %#02x->%#02x", op.Addr, op.Value)
}
