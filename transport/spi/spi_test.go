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

package spi

import (
	"errors"
	"testing"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records exchanges and plays back scripted read bytes.
type fakeConn struct {
	writes [][]byte
	reads  [][]byte
	err    error
}

func (f *fakeConn) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, append([]byte(nil), w...))
	if len(f.reads) > 0 {
		copy(r, f.reads[0])
		f.reads = f.reads[1:]
	}
	return nil
}

func TestReadRegisterFraming(t *testing.T) {
	t.Parallel()

	fake := &fakeConn{reads: [][]byte{{0x00, 0x92}}}
	tr := &Transport{conn: fake, path: "/dev/spidev0.0"}

	v, err := tr.ReadRegister(0x37)
	require.NoError(t, err)
	assert.Equal(t, byte(0x92), v)

	require.Len(t, fake.writes, 1)
	// Address shifted left one bit with the read bit set, then a dummy
	// byte clocking the value out.
	assert.Equal(t, []byte{0xEE, 0x00}, fake.writes[0])
}

func TestWriteRegisterFraming(t *testing.T) {
	t.Parallel()

	fake := &fakeConn{}
	tr := &Transport{conn: fake, path: "/dev/spidev0.0"}

	require.NoError(t, tr.WriteRegister(0x2B, 0x3E))

	require.Len(t, fake.writes, 1)
	assert.Equal(t, []byte{0x56, 0x3E}, fake.writes[0])
}

func TestBusFaultIsWrappedTransient(t *testing.T) {
	t.Parallel()

	fake := &fakeConn{err: errors.New("eio")}
	tr := &Transport{conn: fake, path: "/dev/spidev0.0"}

	_, err := tr.ReadRegister(0x01)
	var te *mfrc522.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, mfrc522.ErrorTypeTransient, te.Type)
	assert.Equal(t, "/dev/spidev0.0", te.Port)

	err = tr.WriteRegister(0x01, 0x0F)
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Retryable)
}

func TestTransportIdentity(t *testing.T) {
	t.Parallel()

	tr := &Transport{path: "/dev/spidev0.1"}
	assert.Equal(t, mfrc522.TransportSPI, tr.Type())
	assert.Equal(t, "/dev/spidev0.1", tr.String())
	assert.NoError(t, tr.Close(), "closing an unopened transport is a no-op")
}
