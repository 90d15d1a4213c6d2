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
	"io"
	"os"

	"golang.org/x/term"
)

// terminal puts stdin into raw mode and streams the bytes typed.
type terminal struct {
	fd       int
	oldState *term.State
	input    chan byte
}

func openTerminal() (*terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && (width < 64 || height < 17) {
		return nil, fmt.Errorf("terminal is %dx%d, at least 64x17 is required", width, height)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	t := &terminal{
		fd:       fd,
		oldState: oldState,
		input:    make(chan byte, 16),
	}

	go t.read(os.Stdin)

	fmt.Print(clearScreen, hideCursor)
	return t, nil
}

// read forwards bytes until the reader fails. The channel is closed on exit.
func (t *terminal) read(r io.Reader) {
	defer close(t.input)

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			t.input <- b
		}
		if err != nil {
			return
		}
	}
}

// restore the terminal to the state before raw mode.
func (t *terminal) restore() {
	fmt.Print(showCursor, "\r\n")
	_ = term.Restore(t.fd, t.oldState)
}
