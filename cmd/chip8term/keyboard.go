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
	"github.com/massung/CHIP-8/chip8"
)

// holdTicks is how long a key stays pressed. Terminals only report key
// presses, so every press is released again after a few ticks.
const holdTicks = 6

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// keyMap maps the left side of a modern keyboard to the CHIP-8 keypad.
var keyMap = map[byte]byte{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// escape sequence states
const (
	escNone = iota
	escStart
	escSequence
)

// keyboard feeds terminal input into a chip8.Keys.
type keyboard struct {
	keys *chip8.Keys
	held [16]int

	// esc tracks escape sequences sent for arrow and function keys, they
	// are swallowed. An ESC not followed by more input before the next
	// tick is the escape key itself.
	esc int
}

// input handles a byte read from the terminal. Returns false on quit.
func (k *keyboard) input(b byte) bool {
	switch k.esc {
	case escStart:
		if b == '[' || b == 'O' {
			k.esc = escSequence
		} else {
			// alt + key
			k.esc = escNone
		}
		return true

	case escSequence:
		if b >= 0x40 && b <= 0x7E {
			k.esc = escNone
		}
		return true
	}

	switch b {
	case keyCtrlC:
		return false
	case keyEscape:
		k.esc = escStart
		return true
	}

	// upper case maps like lower case
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	key, ok := keyMap[b]
	if !ok {
		return true
	}

	if k.held[key] == 0 {
		k.keys.PressKey(key)
	}
	k.held[key] = holdTicks
	return true
}

// tick releases keys whose hold time ran out. Returns false if a lone
// escape key was pressed.
func (k *keyboard) tick() bool {
	if k.esc == escStart {
		return false
	}

	for key, n := range k.held {
		if n == 0 {
			continue
		}

		k.held[key] = n - 1
		if n == 1 {
			k.keys.ReleaseKey(byte(key))
		}
	}
	return true
}
