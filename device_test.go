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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitVariantBProgramsRegisters(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	var slept []time.Duration
	d := New(mock,
		WithVariant(VariantB),
		WithSleep(func(dur time.Duration) { slept = append(slept, dur) }),
	)

	require.NoError(t, d.Init())

	assert.Contains(t, slept, 200*time.Millisecond, "reset must settle before register access")

	cmds := mock.WritesTo(regCommand)
	require.NotEmpty(t, cmds)
	assert.Equal(t, byte(cmdSoftReset), cmds[0])

	assert.Equal(t, []byte{0x8D}, mock.WritesTo(regTMode))
	assert.Equal(t, []byte{0x3E, 0x3E}, mock.WritesTo(regTPrescaler), "probe write plus timer program")
	assert.Equal(t, []byte{30}, mock.WritesTo(regTReloadL))
	assert.Equal(t, []byte{0}, mock.WritesTo(regTReloadH))
	assert.Equal(t, []byte{0x40}, mock.WritesTo(regTxAuto))
	assert.Equal(t, []byte{0x3D}, mock.WritesTo(regMode))

	// Variant B must not touch the variant A extras.
	assert.Empty(t, mock.WritesTo(regRxSel))
	assert.Empty(t, mock.WritesTo(regRFCfg))

	tx := mock.WritesTo(regTxControl)
	require.NotEmpty(t, tx)
	assert.Equal(t, byte(antennaDriverBits), tx[len(tx)-1]&antennaDriverBits, "antenna must end up on")
}

func TestInitVariantAProgramsExtras(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetRegister(regStatus2, status2Crypto1On)
	d := New(mock, WithSleep(func(time.Duration) {}))

	require.NoError(t, d.Init())

	assert.Equal(t, []byte{0x86}, mock.WritesTo(regRxSel))
	assert.Equal(t, []byte{0x7F}, mock.WritesTo(regRFCfg))
	assert.Zero(t, mock.Register(regStatus2)&status2Crypto1On, "stale crypto state must be cleared")
}

func TestInitFailsWhenProbeReadsBackWrong(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueRead(regTPrescaler, 0x00) // dead bus: probe value lost
	d := New(mock, WithVariant(VariantB), WithSleep(func(time.Duration) {}))

	err := d.Init()
	assert.ErrorIs(t, err, ErrInitFailed)
	assert.Empty(t, mock.WritesTo(regTMode), "register program must not run on a dead bus")
}

func TestAntennaOnIsNoOpWhenAlreadyOn(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetRegister(regTxControl, 0x01)
	d := newTestDevice(mock)

	d.AntennaOn()
	assert.Empty(t, mock.Writes(), "a running driver must not be glitched")
}

func TestAntennaOffClearsDrivers(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetRegister(regTxControl, 0x83)
	d := newTestDevice(mock)

	d.AntennaOff()
	assert.Equal(t, byte(0x80), mock.Register(regTxControl))
}

func TestVersionReadsRegister(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetRegister(regVersion, 0x92)
	d := newTestDevice(mock)

	assert.Equal(t, byte(0x92), d.Version())
}

func TestCloseReleasesTransport(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	d := newTestDevice(mock)

	require.NoError(t, d.Close())
	assert.True(t, mock.Closed())
}

func TestRegisterAccessPanicsOnBusFault(t *testing.T) {
	t.Parallel()

	t.Run("write fault", func(t *testing.T) {
		t.Parallel()

		mock := NewMockTransport()
		mock.SetWriteError(errors.New("efault"))
		d := newTestDevice(mock)

		defer func() {
			te, ok := recover().(*TransportError)
			require.True(t, ok, "panic value must be a *TransportError")
			assert.Equal(t, "write register", te.Op)
			assert.Equal(t, "mock", te.Port)
		}()
		d.AntennaOff()
	})

	t.Run("read fault", func(t *testing.T) {
		t.Parallel()

		mock := NewMockTransport()
		mock.SetReadError(errors.New("efault"))
		d := newTestDevice(mock)

		defer func() {
			te, ok := recover().(*TransportError)
			require.True(t, ok, "panic value must be a *TransportError")
			assert.Equal(t, "read register", te.Op)
		}()
		_ = d.Version()
	})
}
