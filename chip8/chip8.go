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

package chip8

const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000

	// ProgramStart is where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits from ProgramStart
	// to the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	// StackDepth is the number of return addresses the call stack holds.
	StackDepth = 16

	// DefaultSpeed is the number of instructions executed per tick.
	DefaultSpeed = 10
)

// Glyphs are the built-in 4x5 hexadecimal digit sprites loaded at address
// 0. Each glyph is 5 bytes, so the sprite for digit d is at d*5.
var Glyphs = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// KeyWait is a pending LD Vx, K request. While Pending is set the next key
// press is written into V[Register].
type KeyWait struct {
	Pending  bool
	Register byte
}

// State is the complete machine state of the CHIP-8 virtual machine. It is
// a plain value: copying it copies memory, registers and stack.
type State struct {
	// Memory addressable by CHIP-8. The first 512 bytes are reserved, the
	// glyph sprites live at the very beginning.
	Memory [MemorySize]byte

	// V are the 16 virtual registers. VF doubles as the carry, borrow and
	// collision flag.
	V [16]byte

	// I is the address register.
	I uint16

	// PC is the program counter. All programs begin at 0x200.
	PC uint16

	// Stack holds return addresses, SP is the number in use.
	Stack [StackDepth]uint16
	SP    int

	// DT and ST are the delay and sound timers, decremented once per tick.
	DT byte
	ST byte

	// Paused is set while waiting for a key press.
	Paused bool

	// Wait is the pending key request made by LD Vx, K.
	Wait KeyWait
}

// NewState returns a reset state.
func NewState() State {
	var s State
	s.Reset()
	return s
}

// Reset the state: memory is cleared and the glyphs are re-seeded, all
// registers, timers and the stack are zeroed and PC is set to 0x200.
func (s *State) Reset() {
	*s = State{PC: ProgramStart}

	copy(s.Memory[:], Glyphs[:])
}

// Depth returns the number of return addresses on the stack.
func (s *State) Depth() int {
	return s.SP
}
