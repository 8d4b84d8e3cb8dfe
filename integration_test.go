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

package mfrc522_test

import (
	"testing"
	"time"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"github.com/cardforge/go-mfrc522/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUID = mfrc522.NewUID(0xDE, 0xAD, 0xBE, 0xEF)

func newSimDevice(t *testing.T, card *simulator.Card) (*mfrc522.Device, *simulator.Chip) {
	t.Helper()

	chip := simulator.New(card)
	dev := mfrc522.New(chip,
		mfrc522.WithPollConfig(mfrc522.PollConfig{Budget: 4}),
		mfrc522.WithSleep(func(time.Duration) {}),
	)
	require.NoError(t, dev.Init())
	return dev, chip
}

func TestFullCardSession(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(testUID, mfrc522.DefaultKey)
	dev, chip := newSimDevice(t, card)

	atqa, err := dev.Request(mfrc522.RequestIdle)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x00}, atqa)

	uid, err := dev.Anticoll()
	require.NoError(t, err)
	assert.Equal(t, testUID, uid)
	assert.True(t, uid.Valid())

	sak, err := dev.SelectTag(uid)
	require.NoError(t, err)
	assert.Equal(t, mfrc522.TypeMifare1K, mfrc522.ParseType(sak))

	require.NoError(t, dev.Authenticate(mfrc522.AuthKeyA, 4, mfrc522.DefaultKey, uid))

	payload := []byte("sixteen byte msg")
	require.Len(t, payload, mfrc522.BlockSize)
	require.NoError(t, dev.WriteBlock(4, payload))
	assert.Equal(t, payload, card.Block(4))

	data, err := dev.ReadBlock(4)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	ok, err := dev.Compare(4, payload)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, dev.CleanBlock(4))
	data, err = dev.ReadBlock(4)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, mfrc522.BlockSize), data)

	dev.StopCrypto1()

	// The probe, anticollision and select frames must be byte-exact.
	frames := chip.SentFrames()
	require.GreaterOrEqual(t, len(frames), 3)
	assert.Equal(t, []byte{0x26}, frames[0])
	assert.Equal(t, []byte{0x93, 0x20}, frames[1])
	assert.Equal(t, []byte{0x93, 0x70, 0xDE, 0xAD, 0xBE, 0xEF, 0x04}, frames[2][:7])
}

func TestEmptyFieldReportsNoTag(t *testing.T) {
	t.Parallel()

	dev, _ := newSimDevice(t, nil)

	_, err := dev.Request(mfrc522.RequestIdle)
	assert.ErrorIs(t, err, mfrc522.ErrNoTag)
	assert.True(t, mfrc522.IsRetryable(err))
}

func TestWrongKeyFailsAuthentication(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(testUID, mfrc522.DefaultKey)
	dev, _ := newSimDevice(t, card)

	uid, err := dev.Check()
	require.NoError(t, err)
	_, err = dev.SelectTag(uid)
	require.NoError(t, err)

	wrongKey := mfrc522.Key{1, 2, 3, 4, 5, 6}
	err = dev.Authenticate(mfrc522.AuthKeyA, 4, wrongKey, uid)
	assert.ErrorIs(t, err, mfrc522.ErrAuthFailed)

	// Without a Crypto1 session the card will not answer memory reads.
	_, err = dev.ReadBlock(4)
	assert.Error(t, err)
}

func TestHaltedCardIgnoresIdleProbeButWakesOnCheck(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(testUID, mfrc522.DefaultKey)
	dev, _ := newSimDevice(t, card)

	uid, err := dev.Check()
	require.NoError(t, err)
	_, err = dev.SelectTag(uid)
	require.NoError(t, err)

	dev.Halt()
	require.True(t, card.Halted())

	_, err = dev.Request(mfrc522.RequestIdle)
	assert.ErrorIs(t, err, mfrc522.ErrNoTag, "halted cards must ignore REQA")

	uid, err = dev.Check()
	require.NoError(t, err, "the wakeup probe must reach halted cards")
	assert.Equal(t, testUID, uid)
	assert.False(t, card.Halted())
}

func TestDumpClassic1K(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(testUID, mfrc522.DefaultKey)
	card.SetBlock(8, []byte("dump me, please!"))
	dev, _ := newSimDevice(t, card)

	uid, err := dev.Check()
	require.NoError(t, err)
	_, err = dev.SelectTag(uid)
	require.NoError(t, err)

	blocks := dev.DumpClassic1K(mfrc522.DefaultKey, uid)
	require.Len(t, blocks, mfrc522.TotalBlocks)
	for i, b := range blocks {
		assert.NotNil(t, b, "block %d", i)
	}
	assert.Equal(t, []byte("dump me, please!"), blocks[8])
	assert.Equal(t, testUID[:], blocks[0][:5], "manufacturer block carries the uid")
}

func TestReadSector(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(testUID, mfrc522.DefaultKey)
	card.SetBlock(4, []byte("0123456789abcdef"))
	dev, _ := newSimDevice(t, card)

	uid, err := dev.Check()
	require.NoError(t, err)
	_, err = dev.SelectTag(uid)
	require.NoError(t, err)

	blocks, err := dev.ReadSector(1, mfrc522.DefaultKey, uid)
	require.NoError(t, err)
	require.Len(t, blocks, mfrc522.BlocksPerSector)
	assert.Equal(t, []byte("0123456789abcdef"), blocks[0])

	_, err = dev.ReadSector(16, mfrc522.DefaultKey, uid)
	assert.ErrorIs(t, err, mfrc522.ErrInvalidParameter)
}

func TestCalculateCRCMatchesReference(t *testing.T) {
	t.Parallel()

	dev, _ := newSimDevice(t, nil)

	crc := dev.CalculateCRC([]byte{0x50, 0x00})
	assert.Equal(t, [2]byte{0x57, 0xCD}, crc)

	again := dev.CalculateCRC([]byte{0x50, 0x00})
	assert.Equal(t, crc, again, "the coprocessor must be deterministic")
}
