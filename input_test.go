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
	"testing"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestPressKeyWhilePaused(t *testing.T) {
	emu := &emulator{keys: &chip8.Keys{}}
	emu.vm = chip8.New(&chip8.Screen{}, emu.keys, chip8.Silence{}, chip8.WithLogger(log.NewTestLogger(t)))

	// LD V2, K
	assert.NoError(t, emu.vm.Load([]byte{0xF2, 0x0A}))
	assert.NoError(t, emu.vm.Tick())
	assert.Equal(t, chip8.Paused, emu.vm.Status())

	emu.paused = true
	emu.pressKey(0x3)
	assert.False(t, emu.keys.IsPressed(0x3))
	assert.Equal(t, chip8.Paused, emu.vm.Status())
	assert.Equal(t, byte(0), emu.vm.State().V[2])

	emu.paused = false
	emu.pressKey(0x3)
	assert.True(t, emu.keys.IsPressed(0x3))
	assert.Equal(t, chip8.Ready, emu.vm.Status())
	assert.Equal(t, byte(0x3), emu.vm.State().V[2])
}
