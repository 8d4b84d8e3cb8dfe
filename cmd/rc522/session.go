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
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	mfrc522 "github.com/cardforge/go-mfrc522"
)

const sessionHelp = `commands:
  scan              wait for a card and select it
  dump              dump all 64 blocks of the current card
  read <block>      dump the sector containing a block (0-63)
  write <block> <hex>  write a block, zero-padded to 16 bytes
  clean <block>     zero a block
  halt              halt the current card
  quit              leave`

// session is the interactive REPL driving one reader.
type session struct {
	dev *mfrc522.Device
	in  *bufio.Scanner
	out io.Writer

	// card holds the UID of the selected card, nil between scans.
	card *mfrc522.UID
	key  mfrc522.Key
}

func newSession(dev *mfrc522.Device, in io.Reader, out io.Writer) *session {
	return &session{
		dev: dev,
		in:  bufio.NewScanner(in),
		out: out,
		key: mfrc522.DefaultKey,
	}
}

func (s *session) run(ctx context.Context) error {
	fmt.Fprintln(s.out, sessionHelp)
	for {
		fmt.Fprint(s.out, "RC522> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "scan":
			err = s.scan(ctx)
		case "dump":
			err = s.dump()
		case "read":
			err = s.read(fields[1:])
		case "write":
			err = s.write(fields[1:])
		case "clean":
			err = s.clean(fields[1:])
		case "halt":
			err = s.halt()
		case "help":
			fmt.Fprintln(s.out, sessionHelp)
		default:
			fmt.Fprintf(s.out, "unknown command %q, try help\n", fields[0])
		}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// scan polls the field until a card answers, then selects it.
func (s *session) scan(ctx context.Context) error {
	fmt.Fprintln(s.out, "waiting for card...")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		uid, err := s.dev.Check()
		if err != nil {
			if mfrc522.IsRetryable(err) {
				continue
			}
			return err
		}

		sak, err := s.dev.SelectTag(uid)
		if err != nil {
			if mfrc522.IsRetryable(err) {
				continue
			}
			return err
		}

		s.card = &uid
		fmt.Fprintf(s.out, "card %s, %s (sak %#02x)\n", uid, mfrc522.ParseType(sak), sak)
		return nil
	}
}

// reselect re-runs discovery and select before a memory operation, so a
// card that was halted or briefly left the field still answers.
func (s *session) reselect() (mfrc522.UID, error) {
	if s.card == nil {
		return mfrc522.UID{}, errors.New("no card selected, scan first")
	}

	uid, err := s.dev.Check()
	if err != nil {
		return mfrc522.UID{}, fmt.Errorf("card lost: %w", err)
	}
	if uid != *s.card {
		s.card = &uid
		fmt.Fprintf(s.out, "note: different card %s in field\n", uid)
	}
	if _, err := s.dev.SelectTag(uid); err != nil {
		return mfrc522.UID{}, fmt.Errorf("select: %w", err)
	}
	return uid, nil
}

func (s *session) dump() error {
	uid, err := s.reselect()
	if err != nil {
		return err
	}
	blocks := s.dev.DumpClassic1K(s.key, uid)
	printDump(s.out, blocks)
	s.dev.StopCrypto1()
	return nil
}

func (s *session) read(args []string) error {
	addr, err := parseBlock(args, 1)
	if err != nil {
		return err
	}
	uid, err := s.reselect()
	if err != nil {
		return err
	}
	defer s.dev.StopCrypto1()

	sector := addr / mfrc522.BlocksPerSector
	blocks, err := s.dev.ReadSector(sector, s.key, uid)
	if err != nil {
		return err
	}
	for i, data := range blocks {
		printBlock(s.out, sector*mfrc522.BlocksPerSector+byte(i), data)
	}
	return nil
}

func (s *session) write(args []string) error {
	addr, err := parseBlock(args, 2)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("bad hex data: %w", err)
	}
	// Short input is zero-padded, long input truncated.
	block := make([]byte, mfrc522.BlockSize)
	copy(block, data)
	return s.writeBlock(addr, block)
}

func (s *session) clean(args []string) error {
	addr, err := parseBlock(args, 1)
	if err != nil {
		return err
	}
	return s.writeBlock(addr, make([]byte, mfrc522.BlockSize))
}

func (s *session) writeBlock(addr byte, data []byte) error {
	// Refuse before touching the card, not after authenticating.
	if mfrc522.IsProtectedBlock(addr) {
		return mfrc522.ErrProtectedBlock
	}

	uid, err := s.reselect()
	if err != nil {
		return err
	}
	defer s.dev.StopCrypto1()

	if err := s.dev.Authenticate(mfrc522.AuthKeyA, addr, s.key, uid); err != nil {
		return err
	}
	if err := s.dev.WriteBlock(addr, data); err != nil {
		return err
	}

	ok, err := s.dev.Compare(addr, data)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !ok {
		return errors.New("verify: block contents differ after write")
	}
	fmt.Fprintf(s.out, "block %d written\n", addr)
	return nil
}

func (s *session) halt() error {
	if s.card == nil {
		return errors.New("no card selected, scan first")
	}
	s.dev.Halt()
	s.dev.StopCrypto1()
	fmt.Fprintf(s.out, "card %s halted\n", *s.card)
	s.card = nil
	return nil
}

func parseBlock(args []string, want int) (byte, error) {
	if len(args) != want {
		return 0, fmt.Errorf("expected %d argument(s)", want)
	}
	n, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil || n >= mfrc522.TotalBlocks {
		return 0, fmt.Errorf("bad block address %q, want 0-%d", args[0], mfrc522.TotalBlocks-1)
	}
	return byte(n), nil
}
