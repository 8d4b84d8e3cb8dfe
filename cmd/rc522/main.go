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

// rc522 is an interactive MIFARE Classic tool for MFRC522 readers.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	mfrc522 "github.com/cardforge/go-mfrc522"
	"github.com/cardforge/go-mfrc522/detection"
	"github.com/cardforge/go-mfrc522/transport/i2c"
	"github.com/cardforge/go-mfrc522/transport/spi"
	"github.com/cardforge/go-mfrc522/transport/uart"
	"github.com/urfave/cli/v3"
	"periph.io/x/conn/v3/physic"
)

func main() {
	cmd := &cli.Command{
		Name:  "rc522",
		Usage: "interactive MIFARE Classic card tool for MFRC522 readers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "device",
				Aliases: []string{"d"},
				Usage:   "bus device path (auto-detected when empty)",
			},
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   "auto",
				Usage:   "transport type: spi, i2c, uart or auto",
			},
			&cli.StringFlag{
				Name:  "variant",
				Value: "A",
				Usage: "chip init register program, A or B",
			},
			&cli.IntFlag{
				Name:  "speed",
				Usage: "SPI clock frequency in hertz",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable driver debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rc522: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		mfrc522.SetDebugEnabled(true)
	}

	variant, err := parseVariant(cmd.String("variant"))
	if err != nil {
		return err
	}

	transport, err := openTransport(cmd)
	if err != nil {
		return err
	}

	dev := mfrc522.New(transport, mfrc522.WithVariant(variant))
	defer func() { _ = dev.Close() }()

	if err := dev.Init(); err != nil {
		return fmt.Errorf("%s: %w", transport, err)
	}

	version := dev.Version()
	fmt.Printf("MFRC522 on %s (%s), version %#02x\n", transport, transport.Type(), version)
	if !detection.IsKnownVersion(version) {
		fmt.Printf("warning: unrecognized version register value %#02x\n", version)
	}

	return newSession(dev, os.Stdin, os.Stdout).run(ctx)
}

func parseVariant(s string) (mfrc522.Variant, error) {
	switch s {
	case "A", "a":
		return mfrc522.VariantA, nil
	case "B", "b":
		return mfrc522.VariantB, nil
	default:
		return 0, fmt.Errorf("unknown variant %q, want A or B", s)
	}
}

func openTransport(cmd *cli.Command) (mfrc522.Transport, error) {
	path := cmd.String("device")
	kind := mfrc522.TransportType(cmd.String("transport"))

	if kind == "auto" {
		if path != "" {
			kind = detection.TransportForPath(path)
		} else {
			devices := detection.DetectAll()
			if len(devices) == 0 {
				return nil, errors.New("no candidate devices found, pass --device")
			}
			path, kind = devices[0].Path, devices[0].Transport
		}
	}

	switch kind {
	case mfrc522.TransportSPI:
		var opts []spi.Option
		if hz := cmd.Int("speed"); hz > 0 {
			opts = append(opts, spi.WithSpeed(physic.Frequency(hz)*physic.Hertz))
		}
		return spi.New(path, opts...)
	case mfrc522.TransportI2C:
		return i2c.New(path)
	case mfrc522.TransportUART:
		return uart.New(path)
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
