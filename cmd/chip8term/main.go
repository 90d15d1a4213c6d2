/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Package main implements a CHIP-8 interpreter running in a text terminal.
package main

import (
	"errors"
	"os"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/massung/CHIP-8/internal/config"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := config.ParseFlags("chip8term", os.Args[1:])
	if err == nil && opts.ROM == "" {
		err = opts.Usage("no ROM file given")
	}
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	config.PrintBanner(logger, "chip8term", opts.Quiet, version, commit, date)

	if err := run(logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(logger *log.Logger, opts config.Options) error {
	ctx := app.Context()

	program, err := config.ReadROM(opts.ROM)
	if err != nil {
		return err
	}

	var tone chip8.Tone = chip8.Silence{}
	if t, err := newTone(); err != nil {
		logger.Warn("Audio unavailable", log.Err(err))
	} else {
		defer func() { _ = t.Close() }()
		tone = t
	}

	screen := &chip8.Screen{}
	kb := &keyboard{keys: &chip8.Keys{}}

	vm := chip8.New(screen, kb.keys, tone, opts.VMOptions(logger)...)
	if err := vm.Load(program); err != nil {
		return err
	}

	tty, err := openTerminal()
	if err != nil {
		return err
	}
	defer tty.restore()

	screen.OnPresent = func(s *chip8.Screen) {
		_ = render(os.Stdout, s)
	}

	clock := time.NewTicker(opts.Rate)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b, ok := <-tty.input:
			if !ok || !kb.input(b) {
				tone.Stop()
				return nil
			}

		case <-clock.C:
			if !kb.tick() {
				tone.Stop()
				return nil
			}

			if err := vm.Tick(); err != nil {
				tone.Stop()
				return err
			}
		}
	}
}
