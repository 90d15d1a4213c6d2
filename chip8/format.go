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
	"fmt"
)

// operands formats the operands of each operation.
var operands = [numOps]func(inst Instruction) string{
	CLS:         none,
	RET:         none,
	JP_ADDR:     func(inst Instruction) string { return fmt.Sprintf("#%03X", inst.NNN) },
	CALL_ADDR:   func(inst Instruction) string { return fmt.Sprintf("#%03X", inst.NNN) },
	SE_Vx_BYTE:  vxByte,
	SNE_Vx_BYTE: vxByte,
	SE_Vx_Vy:    vxVy,
	LD_Vx_BYTE:  vxByte,
	ADD_Vx_BYTE: vxByte,
	LD_Vx_Vy:    vxVy,
	OR:          vxVy,
	AND:         vxVy,
	XOR:         vxVy,
	ADD_Vx_Vy:   vxVy,
	SUB_Vx_Vy:   vxVy,
	SHR:         vx,
	SUBN:        vxVy,
	SHL:         vx,
	SNE_Vx_Vy:   vxVy,
	LD_I_ADDR:   func(inst Instruction) string { return fmt.Sprintf("I, #%03X", inst.NNN) },
	JP_V0_ADDR:  func(inst Instruction) string { return fmt.Sprintf("V0, #%03X", inst.NNN) },
	RND:         vxByte,
	DRW:         func(inst Instruction) string { return fmt.Sprintf("V%X, V%X, %d", inst.X, inst.Y, inst.N) },
	SKP_Vx:      vx,
	SKNP_Vx:     vx,
	LD_Vx_DT:    func(inst Instruction) string { return fmt.Sprintf("V%X, DT", inst.X) },
	LD_Vx_K:     func(inst Instruction) string { return fmt.Sprintf("V%X, K", inst.X) },
	LD_DT_Vx:    func(inst Instruction) string { return fmt.Sprintf("DT, V%X", inst.X) },
	LD_ST_Vx:    func(inst Instruction) string { return fmt.Sprintf("ST, V%X", inst.X) },
	ADD_I_Vx:    func(inst Instruction) string { return fmt.Sprintf("I, V%X", inst.X) },
	LD_F_Vx:     func(inst Instruction) string { return fmt.Sprintf("F, V%X", inst.X) },
	LD_B_Vx:     func(inst Instruction) string { return fmt.Sprintf("B, V%X", inst.X) },
	LD_I_Vx:     func(inst Instruction) string { return fmt.Sprintf("[I], V%X", inst.X) },
	LD_Vx_I:     func(inst Instruction) string { return fmt.Sprintf("V%X, [I]", inst.X) },
}

func none(Instruction) string { return "" }

func vx(inst Instruction) string { return fmt.Sprintf("V%X", inst.X) }

func vxByte(inst Instruction) string { return fmt.Sprintf("V%X, #%02X", inst.X, inst.KK) }

func vxVy(inst Instruction) string { return fmt.Sprintf("V%X, V%X", inst.X, inst.Y) }

// String returns the instruction in assembler syntax, e.g. "LD     V1, #20".
func (inst Instruction) String() string {
	if inst.Op >= numOps {
		return "??"
	}

	args := operands[inst.Op](inst)
	if args == "" {
		return inst.Op.Mnemonic()
	}
	return fmt.Sprintf("%-6s %s", inst.Op.Mnemonic(), args)
}

// Describe formats the instruction at addr for trace and step output,
// e.g. "0200 - CLS".
func (s *State) Describe(addr uint16) string {
	if int(addr) >= MemorySize-1 {
		return ""
	}

	word := uint16(s.Memory[addr])<<8 | uint16(s.Memory[addr+1])

	inst, err := Decode(word, addr)
	if err != nil {
		return fmt.Sprintf("%04X - ??", addr)
	}
	return fmt.Sprintf("%04X - %s", addr, inst)
}
