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
	"bufio"
	"io"

	"github.com/massung/CHIP-8/chip8"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// halfBlocks are indexed by the upper pixel in bit 1 and the lower in bit 0.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// render writes the screen as half block characters, two pixel rows per
// text row, starting at the top left corner of the terminal.
func render(w io.Writer, screen *chip8.Screen) error {
	out := bufio.NewWriter(w)

	_, _ = out.WriteString(cursorHome)

	for y := 0; y < chip8.Height; y += 2 {
		for x := range chip8.Width {
			var i int
			if screen.Pixel(x, y) {
				i |= 2
			}
			if screen.Pixel(x, y+1) {
				i |= 1
			}
			_, _ = out.WriteString(halfBlocks[i])
		}

		// raw mode does not translate newlines
		_, _ = out.WriteString("\r\n")
	}

	return out.Flush()
}
