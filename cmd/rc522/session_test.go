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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"github.com/cardforge/go-mfrc522/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, card *simulator.Card, input string) (*session, *bytes.Buffer) {
	t.Helper()

	chip := simulator.New(card)
	dev := mfrc522.New(chip,
		mfrc522.WithPollConfig(mfrc522.PollConfig{Budget: 4}),
		mfrc522.WithSleep(func(time.Duration) {}),
	)
	require.NoError(t, dev.Init())

	var out bytes.Buffer
	return newSession(dev, strings.NewReader(input), &out), &out
}

func TestSessionScanReadQuit(t *testing.T) {
	t.Parallel()

	uid := mfrc522.NewUID(0xDE, 0xAD, 0xBE, 0xEF)
	card := simulator.NewCard(uid, mfrc522.DefaultKey)
	card.SetBlock(1, []byte("hello rc522 card"))

	s, out := newTestSession(t, card, "scan\nread 1\nquit\n")
	require.NoError(t, s.run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "RC522> ")
	assert.Contains(t, output, "deadbeef")
	assert.Contains(t, output, "MIFARE Classic 1K")
	assert.Contains(t, output, "hello rc522 card")
}

func TestSessionWriteVerifiesAndCleans(t *testing.T) {
	t.Parallel()

	uid := mfrc522.NewUID(0x12, 0x34, 0x56, 0x78)
	card := simulator.NewCard(uid, mfrc522.DefaultKey)

	payload := "00112233445566778899aabbccddeeff"
	s, out := newTestSession(t, card, "scan\nwrite 5 "+payload+"\nclean 5\nquit\n")
	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "block 5 written")
	assert.Equal(t, make([]byte, mfrc522.BlockSize), card.Block(5))
}

func TestSessionRefusesProtectedWrite(t *testing.T) {
	t.Parallel()

	uid := mfrc522.NewUID(1, 2, 3, 4)
	card := simulator.NewCard(uid, mfrc522.DefaultKey)

	s, out := newTestSession(t, card, "scan\nclean 7\nquit\n")
	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "block is protected")
}

func TestSessionCommandsRequireScan(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(mfrc522.NewUID(1, 2, 3, 4), mfrc522.DefaultKey)

	s, out := newTestSession(t, card, "dump\nquit\n")
	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "no card selected")
}

func TestSessionHaltClearsCard(t *testing.T) {
	t.Parallel()

	uid := mfrc522.NewUID(0xAA, 0xBB, 0xCC, 0xDD)
	card := simulator.NewCard(uid, mfrc522.DefaultKey)

	s, out := newTestSession(t, card, "scan\nhalt\nread 1\nquit\n")
	require.NoError(t, s.run(context.Background()))

	assert.True(t, card.Halted())
	assert.Contains(t, out.String(), "halted")
}

func TestSessionUnknownCommand(t *testing.T) {
	t.Parallel()

	card := simulator.NewCard(mfrc522.NewUID(1, 2, 3, 4), mfrc522.DefaultKey)

	s, out := newTestSession(t, card, "frobnicate\nquit\n")
	require.NoError(t, s.run(context.Background()))

	assert.Contains(t, out.String(), "unknown command")
}

func TestPrintDumpFormatsSectors(t *testing.T) {
	t.Parallel()

	blocks := make([][]byte, mfrc522.TotalBlocks)
	blocks[0] = []byte("0123456789abcdef")

	var out bytes.Buffer
	printDump(&out, blocks)

	output := out.String()
	assert.Contains(t, output, "-- sector 0 --")
	assert.Contains(t, output, "-- sector 15 --")
	assert.Contains(t, output, "|0123456789abcdef|")
	assert.Contains(t, output, "30 31 32 33")
}
