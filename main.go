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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/massung/CHIP-8/internal/config"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags("chip8", os.Args[1:])
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
	config.PrintBanner(logger, "chip8", opts.Quiet, version, commit, date)

	if err := run(logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

// run the emulator until the window is closed, the user quits or the
// process is interrupted. SDL is torn down before returning.
func run(logger *log.Logger, opts config.Options) error {
	ctx := app.Context()

	if opts.ROM == "" {
		rom, err := pickROM()
		if err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return nil
			}
			return fmt.Errorf("selecting ROM: %w", err)
		}
		opts.ROM = rom
	}

	program, err := config.ReadROM(opts.ROM)
	if err != nil {
		return err
	}

	emu, err := newEmulator(logger, opts)
	if err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer emu.destroy()

	if err := emu.load(program); err != nil {
		return err
	}

	clock := time.NewTicker(opts.Rate)
	defer clock.Stop()

	// loop until window closed, user quit or interrupted
	for emu.processEvents() {
		select {
		case <-ctx.Done():
			logger.Info("Interrupted")
			return nil
		case <-clock.C:
			if err := emu.tick(); err != nil {
				logger.Error("Program halted", log.Err(err), log.Hex("pc", emu.vm.State().PC))
				emu.halted = true
				emu.updateTitle()
			}
		}
	}
	return nil
}

// pickROM asks for a ROM file with a native file dialog.
func pickROM() (string, error) {
	return dialog.File().
		Filter("CHIP-8 ROMs", "ch8", "c8").
		Filter("All files", "*").
		Title("Load CHIP-8 ROM").
		Load()
}

// emulator ties a VM to the SDL window, keyboard and audio device.
type emulator struct {
	logger *log.Logger
	opts   config.Options

	window   *sdl.Window
	renderer *sdl.Renderer

	vm     *chip8.VM
	screen *sdlScreen
	keys   *chip8.Keys
	tone   *sdlTone

	program []byte

	// paused stops emulation, single stepping is possible with F6.
	paused bool

	// halted is set after the program failed, until it is reloaded.
	halted bool
}

func newEmulator(logger *log.Logger, opts config.Options) (*emulator, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	w := int32(chip8.Width * opts.Scale)
	h := int32(chip8.Height * opts.Scale)

	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		return nil, err
	}

	emu := &emulator{
		logger:   logger,
		opts:     opts,
		window:   window,
		renderer: renderer,
		screen:   newScreen(renderer, int32(opts.Scale)),
		keys:     &chip8.Keys{},
	}

	// a missing audio device only costs the sound
	if emu.tone, err = newTone(); err != nil {
		logger.Warn("Audio unavailable", log.Err(err))
	}

	var tone chip8.Tone = chip8.Silence{}
	if emu.tone != nil {
		tone = emu.tone
	}

	emu.vm = chip8.New(emu.screen, emu.keys, tone, opts.VMOptions(logger)...)
	return emu, nil
}

// load the program into the VM and remember it for reloading.
func (emu *emulator) load(program []byte) error {
	if err := emu.vm.Load(program); err != nil {
		return err
	}

	emu.program = program
	emu.halted = false
	emu.keys.ReleaseAll()
	emu.updateTitle()
	return nil
}

// tick the VM unless emulation is paused or the program halted. The screen
// is still presented so the window keeps refreshing.
func (emu *emulator) tick() error {
	if emu.paused || emu.halted {
		emu.screen.Present()
		return nil
	}

	status := emu.vm.Status()
	if err := emu.vm.Tick(); err != nil {
		return err
	}
	if emu.vm.Status() != status {
		emu.updateTitle()
	}
	return nil
}

// step a single instruction while paused.
func (emu *emulator) step() {
	if !emu.paused || emu.halted {
		return
	}

	if err := emu.vm.Step(); err != nil {
		emu.logger.Error("Program halted", log.Err(err))
		emu.halted = true
	}

	s := emu.vm.State()
	emu.logger.Info("Step",
		log.Hex("pc", s.PC),
		log.Hex("i", s.I),
		log.Int("sp", s.SP),
		log.String("next", s.Describe(s.PC)))
	emu.updateTitle()
}

func (emu *emulator) updateTitle() {
	title := "CHIP-8 - " + filepath.Base(emu.opts.ROM)

	switch {
	case emu.halted:
		title += " [halted]"
	case emu.paused:
		title += " [paused]"
	case emu.vm.Status() == chip8.Paused:
		title += " [waiting for key]"
	}

	emu.window.SetTitle(title)
}

func (emu *emulator) destroy() {
	if emu.tone != nil {
		emu.tone.Close()
	}
	_ = emu.renderer.Destroy()
	_ = emu.window.Destroy()
	sdl.Quit()
}
