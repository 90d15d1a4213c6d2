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

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when ticking or stepping a VM that has no
	// program loaded.
	ErrNotLoaded = errors.New("no program loaded")

	// ErrStackOverflow is wrapped by a StackError when a CALL would exceed
	// the stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is wrapped by a StackError when RET finds an empty
	// stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMemoryRange is wrapped by a MemoryError.
	ErrMemoryRange = errors.New("memory address out of range")

	// ErrProgramTooLarge is wrapped by a LoadError.
	ErrProgramTooLarge = errors.New("program too large")
)

// DecodeError is returned for an instruction word that matches no opcode.
type DecodeError struct {
	Word uint16
	PC   uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid opcode #%04X at #%04X", e.Word, e.PC)
}

// StackError reports a call stack overflow or underflow. It unwraps to
// ErrStackOverflow or ErrStackUnderflow.
type StackError struct {
	Err   error
	PC    uint16
	Depth int
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%s at #%04X (depth %d)", e.Err, e.PC, e.Depth)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// MemoryError reports an access outside of addressable memory while the
// VM is using the Strict memory policy.
type MemoryError struct {
	Addr uint
	PC   uint16
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s: #%04X at #%04X", ErrMemoryRange, e.Addr, e.PC)
}

func (e *MemoryError) Unwrap() error {
	return ErrMemoryRange
}

// LoadError is returned by Load when the program cannot fit in memory.
type LoadError struct {
	Size int
	Max  int
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %d bytes, at most %d fit", ErrProgramTooLarge, e.Size, e.Max)
}

func (e *LoadError) Unwrap() error {
	return ErrProgramTooLarge
}
