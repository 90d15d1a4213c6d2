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
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// keyMap maps the left side of a modern keyboard to the CHIP-8 keypad.
var keyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// processEvents from SDL and map keys to the CHIP-8 keypad. Returns false
// when the emulator should quit.
func (emu *emulator) processEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			key, mapped := keyMap[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if mapped {
					emu.keys.ReleaseKey(key)
				}
				continue
			}

			if mapped {
				if ev.Repeat == 0 {
					emu.pressKey(key)
				}
				continue
			}

			if !emu.controlKey(ev.Keysym.Scancode) {
				return false
			}
		}
	}

	return true
}

// pressKey forwards a keypad press unless emulation is paused, so a frozen
// VM never resumes from a pending key wait.
func (emu *emulator) pressKey(key byte) {
	if emu.paused {
		return
	}
	emu.keys.PressKey(key)
}

// controlKey handles the emulator keys. Returns false on quit.
func (emu *emulator) controlKey(code sdl.Scancode) bool {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return false

	case sdl.SCANCODE_BACKSPACE:
		emu.logger.Info("Reloading ROM")

		if err := emu.load(emu.program); err != nil {
			emu.logger.Error("Reloading ROM failed", log.Err(err))
		}

	case sdl.SCANCODE_LEFTBRACKET:
		emu.vm.SetSpeed(emu.vm.Speed() - 1)
		emu.logger.Info("Speed changed", log.Int("speed", emu.vm.Speed()))

	case sdl.SCANCODE_RIGHTBRACKET:
		emu.vm.SetSpeed(emu.vm.Speed() + 1)
		emu.logger.Info("Speed changed", log.Int("speed", emu.vm.Speed()))

	case sdl.SCANCODE_SPACE, sdl.SCANCODE_F5:
		emu.paused = !emu.paused
		if emu.paused && emu.tone != nil {
			emu.tone.Stop()
		}
		emu.updateTitle()

	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		emu.step()

	case sdl.SCANCODE_F3:
		emu.screen.TogglePersistence()
	}

	return true
}
