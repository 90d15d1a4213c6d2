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

// operation executes a single decoded instruction. The state is received by
// value and the updated state returned; PC has already been advanced past
// the instruction.
type operation func(s State, in Instruction, e *env) (State, error)

// operations is the instruction table, indexed by Op.
var operations = [numOps]operation{
	CLS:         cls,
	RET:         ret,
	JP_ADDR:     jump,
	CALL_ADDR:   call,
	SE_Vx_BYTE:  skipIf,
	SNE_Vx_BYTE: skipIfNot,
	SE_Vx_Vy:    skipIfXY,
	LD_Vx_BYTE:  loadX,
	ADD_Vx_BYTE: addX,
	LD_Vx_Vy:    loadXY,
	OR:          or,
	AND:         and,
	XOR:         xor,
	ADD_Vx_Vy:   addXY,
	SUB_Vx_Vy:   subXY,
	SHR:         shr,
	SUBN:        subYX,
	SHL:         shl,
	SNE_Vx_Vy:   skipIfNotXY,
	LD_I_ADDR:   loadI,
	JP_V0_ADDR:  jumpV0,
	RND:         rnd,
	DRW:         drw,
	SKP_Vx:      skipIfPressed,
	SKNP_Vx:     skipIfNotPressed,
	LD_Vx_DT:    loadXDT,
	LD_Vx_K:     loadXK,
	LD_DT_Vx:    loadDTX,
	LD_ST_Vx:    loadSTX,
	ADD_I_Vx:    addIX,
	LD_F_Vx:     loadF,
	LD_B_Vx:     loadB,
	LD_I_Vx:     saveRegs,
	LD_Vx_I:     loadRegs,
}

// env carries the capabilities and the memory policy the instruction table
// runs against.
type env struct {
	display PixelPlane
	keys    Keypad
	rand    func() byte
	policy  MemoryPolicy

	// wrapped is called when an out of range access is wrapped.
	wrapped func(addr uint, pc uint16)
}

// span verifies that n bytes starting at addr can be accessed. Callers
// always mask each address with 0xFFF, so under the Wrap policy an
// overflowing span wraps to the start of memory.
func (e *env) span(s *State, addr, n uint) error {
	if n == 0 || addr+n <= MemorySize {
		return nil
	}

	bad := addr
	if bad < MemorySize {
		bad = MemorySize
	}

	if e.policy == Strict {
		return &MemoryError{Addr: bad, PC: s.PC - 2}
	}

	if e.wrapped != nil {
		e.wrapped(bad, s.PC-2)
	}
	return nil
}

// clear the display.
func cls(s State, _ Instruction, e *env) (State, error) {
	e.display.Clear()
	return s, nil
}

// return from subroutine.
func ret(s State, _ Instruction, _ *env) (State, error) {
	if s.SP == 0 {
		return s, &StackError{Err: ErrStackUnderflow, PC: s.PC - 2, Depth: s.SP}
	}

	s.SP--
	s.PC = s.Stack[s.SP]
	return s, nil
}

// jump to address.
func jump(s State, in Instruction, _ *env) (State, error) {
	s.PC = in.NNN
	return s, nil
}

// call a subroutine at address.
func call(s State, in Instruction, _ *env) (State, error) {
	if s.SP == StackDepth {
		return s, &StackError{Err: ErrStackOverflow, PC: s.PC - 2, Depth: s.SP}
	}

	s.Stack[s.SP] = s.PC
	s.SP++
	s.PC = in.NNN
	return s, nil
}

// jump to address + v0.
func jumpV0(s State, in Instruction, _ *env) (State, error) {
	s.PC = in.NNN + uint16(s.V[0])
	return s, nil
}

// skip next instruction if cond holds.
func skip(s State, cond bool) (State, error) {
	if cond {
		s.PC += 2
	}
	return s, nil
}

// skip next instruction if vx == kk.
func skipIf(s State, in Instruction, _ *env) (State, error) {
	return skip(s, s.V[in.X] == in.KK)
}

// skip next instruction if vx != kk.
func skipIfNot(s State, in Instruction, _ *env) (State, error) {
	return skip(s, s.V[in.X] != in.KK)
}

// skip next instruction if vx == vy.
func skipIfXY(s State, in Instruction, _ *env) (State, error) {
	return skip(s, s.V[in.X] == s.V[in.Y])
}

// skip next instruction if vx != vy.
func skipIfNotXY(s State, in Instruction, _ *env) (State, error) {
	return skip(s, s.V[in.X] != s.V[in.Y])
}

// skip next instruction if key(vx) is pressed.
func skipIfPressed(s State, in Instruction, e *env) (State, error) {
	return skip(s, e.keys.IsPressed(s.V[in.X]&0xF))
}

// skip next instruction if key(vx) is not pressed.
func skipIfNotPressed(s State, in Instruction, e *env) (State, error) {
	return skip(s, !e.keys.IsPressed(s.V[in.X]&0xF))
}

// load kk into vx.
func loadX(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] = in.KK
	return s, nil
}

// add kk to vx, no carry.
func addX(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] += in.KK
	return s, nil
}

// load vy into vx.
func loadXY(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] = s.V[in.Y]
	return s, nil
}

// or vx with vy into vx.
func or(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] |= s.V[in.Y]
	return s, nil
}

// and vx with vy into vx.
func and(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] &= s.V[in.Y]
	return s, nil
}

// xor vx with vy into vx.
func xor(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] ^= s.V[in.Y]
	return s, nil
}

// add vy to vx and set carry.
func addXY(s State, in Instruction, _ *env) (State, error) {
	sum := int(s.V[in.X]) + int(s.V[in.Y])

	s.V[0xF] = flag(sum > 0xFF)
	s.V[in.X] = byte(sum)
	return s, nil
}

// subtract vy from vx, set VF when the difference is strictly positive.
// An equal pair clears VF.
func subXY(s State, in Instruction, _ *env) (State, error) {
	diff := int(s.V[in.X]) - int(s.V[in.Y])

	s.V[0xF] = flag(diff > 0)
	s.V[in.X] = byte(diff)
	return s, nil
}

// subtract vx from vy and store in vx, same flag rule as subXY.
func subYX(s State, in Instruction, _ *env) (State, error) {
	diff := int(s.V[in.Y]) - int(s.V[in.X])

	s.V[0xF] = flag(diff > 0)
	s.V[in.X] = byte(diff)
	return s, nil
}

// shr vx 1 bit, set carry to LSB of vx before shift.
func shr(s State, in Instruction, _ *env) (State, error) {
	v := s.V[in.X]

	s.V[0xF] = v & 1
	s.V[in.X] = v >> 1
	return s, nil
}

// shl vx 1 bit, set carry to MSB of vx before shift.
func shl(s State, in Instruction, _ *env) (State, error) {
	v := s.V[in.X]

	s.V[0xF] = v >> 7
	s.V[in.X] = v << 1
	return s, nil
}

// load address register.
func loadI(s State, in Instruction, _ *env) (State, error) {
	s.I = in.NNN
	return s, nil
}

// load a random number & kk into vx.
func rnd(s State, in Instruction, e *env) (State, error) {
	s.V[in.X] = e.rand() & in.KK
	return s, nil
}

// draw an n-row sprite at I to the display at vx, vy.
func drw(s State, in Instruction, e *env) (State, error) {
	if err := e.span(&s, uint(s.I), uint(in.N)); err != nil {
		return s, err
	}

	x := int(s.V[in.X])
	y := int(s.V[in.Y])

	s.V[0xF] = 0

	for row := 0; row < int(in.N); row++ {
		sprite := s.Memory[(uint(s.I)+uint(row))&0xFFF]

		for col := 0; col < 8; col++ {
			bit := sprite>>(7-col)&1

			if e.display.SetPixel(x+col, y+row, bit) {
				s.V[0xF] = 1
			}
		}
	}

	return s, nil
}

// load delay timer into vx.
func loadXDT(s State, in Instruction, _ *env) (State, error) {
	s.V[in.X] = s.DT
	return s, nil
}

// wait for the next key hit and load it into vx.
func loadXK(s State, in Instruction, _ *env) (State, error) {
	s.Paused = true
	s.Wait = KeyWait{Pending: true, Register: in.X}
	return s, nil
}

// load vx into delay timer.
func loadDTX(s State, in Instruction, _ *env) (State, error) {
	s.DT = s.V[in.X]
	return s, nil
}

// load vx into sound timer.
func loadSTX(s State, in Instruction, _ *env) (State, error) {
	s.ST = s.V[in.X]
	return s, nil
}

// add vx to I.
func addIX(s State, in Instruction, _ *env) (State, error) {
	s.I += uint16(s.V[in.X])
	return s, nil
}

// load glyph sprite address for vx into I.
func loadF(s State, in Instruction, _ *env) (State, error) {
	s.I = uint16(s.V[in.X]) * 5
	return s, nil
}

// store the BCD of vx at I, I+1 and I+2.
func loadB(s State, in Instruction, e *env) (State, error) {
	if err := e.span(&s, uint(s.I), 3); err != nil {
		return s, err
	}

	v := s.V[in.X]

	s.Memory[uint(s.I)&0xFFF] = v / 100
	s.Memory[(uint(s.I)+1)&0xFFF] = v / 10 % 10
	s.Memory[(uint(s.I)+2)&0xFFF] = v % 10
	return s, nil
}

// save registers v0..vx to I.
func saveRegs(s State, in Instruction, e *env) (State, error) {
	n := uint(in.X) + 1

	if err := e.span(&s, uint(s.I), n); err != nil {
		return s, err
	}

	for i := uint(0); i < n; i++ {
		s.Memory[(uint(s.I)+i)&0xFFF] = s.V[i]
	}
	return s, nil
}

// load registers v0..vx from I.
func loadRegs(s State, in Instruction, e *env) (State, error) {
	n := uint(in.X) + 1

	if err := e.span(&s, uint(s.I), n); err != nil {
		return s, err
	}

	for i := uint(0); i < n; i++ {
		s.V[i] = s.Memory[(uint(s.I)+i)&0xFFF]
	}
	return s, nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
