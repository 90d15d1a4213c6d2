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
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one of the 35 CHIP-8 operations.
type Op uint8

const (
	CLS Op = iota
	RET
	JP_ADDR
	CALL_ADDR
	SE_Vx_BYTE
	SNE_Vx_BYTE
	SE_Vx_Vy
	LD_Vx_BYTE
	ADD_Vx_BYTE
	LD_Vx_Vy
	OR
	AND
	XOR
	ADD_Vx_Vy
	SUB_Vx_Vy
	SHR
	SUBN
	SHL
	SNE_Vx_Vy
	LD_I_ADDR
	JP_V0_ADDR
	RND
	DRW
	SKP_Vx
	SKNP_Vx
	LD_Vx_DT
	LD_Vx_K
	LD_DT_Vx
	LD_ST_Vx
	ADD_I_Vx
	LD_F_Vx
	LD_B_Vx
	LD_I_Vx
	LD_Vx_I

	numOps
)

var opNames = [numOps]string{
	CLS:         "CLS",
	RET:         "RET",
	JP_ADDR:     "JP_ADDR",
	CALL_ADDR:   "CALL_ADDR",
	SE_Vx_BYTE:  "SE_Vx_BYTE",
	SNE_Vx_BYTE: "SNE_Vx_BYTE",
	SE_Vx_Vy:    "SE_Vx_Vy",
	LD_Vx_BYTE:  "LD_Vx_BYTE",
	ADD_Vx_BYTE: "ADD_Vx_BYTE",
	LD_Vx_Vy:    "LD_Vx_Vy",
	OR:          "OR",
	AND:         "AND",
	XOR:         "XOR",
	ADD_Vx_Vy:   "ADD_Vx_Vy",
	SUB_Vx_Vy:   "SUB_Vx_Vy",
	SHR:         "SHR",
	SUBN:        "SUBN",
	SHL:         "SHL",
	SNE_Vx_Vy:   "SNE_Vx_Vy",
	LD_I_ADDR:   "LD_I_ADDR",
	JP_V0_ADDR:  "JP_V0_ADDR",
	RND:         "RND",
	DRW:         "DRW",
	SKP_Vx:      "SKP_Vx",
	SKNP_Vx:     "SKNP_Vx",
	LD_Vx_DT:    "LD_Vx_DT",
	LD_Vx_K:     "LD_Vx_K",
	LD_DT_Vx:    "LD_DT_Vx",
	LD_ST_Vx:    "LD_ST_Vx",
	ADD_I_Vx:    "ADD_I_Vx",
	LD_F_Vx:     "LD_F_Vx",
	LD_B_Vx:     "LD_B_Vx",
	LD_I_Vx:     "LD_I_Vx",
	LD_Vx_I:     "LD_Vx_I",
}

// mnemonics maps every operation onto the assembler mnemonic used by the
// shared CHIP-8 instruction set description.
var mnemonics = [numOps]cpu.OpcodeID{
	CLS:         cpu.Cls,
	RET:         cpu.Ret,
	JP_ADDR:     cpu.Jp,
	CALL_ADDR:   cpu.Call,
	SE_Vx_BYTE:  cpu.Se,
	SNE_Vx_BYTE: cpu.Sne,
	SE_Vx_Vy:    cpu.Se,
	LD_Vx_BYTE:  cpu.Ld,
	ADD_Vx_BYTE: cpu.Add,
	LD_Vx_Vy:    cpu.Ld,
	OR:          cpu.Or,
	AND:         cpu.And,
	XOR:         cpu.Xor,
	ADD_Vx_Vy:   cpu.Add,
	SUB_Vx_Vy:   cpu.Sub,
	SHR:         cpu.Shr,
	SUBN:        cpu.Subn,
	SHL:         cpu.Shl,
	SNE_Vx_Vy:   cpu.Sne,
	LD_I_ADDR:   cpu.Ld,
	JP_V0_ADDR:  cpu.Jp,
	RND:         cpu.Rnd,
	DRW:         cpu.Drw,
	SKP_Vx:      cpu.Skp,
	SKNP_Vx:     cpu.Sknp,
	LD_Vx_DT:    cpu.Ld,
	LD_Vx_K:     cpu.Ld,
	LD_DT_Vx:    cpu.Ld,
	LD_ST_Vx:    cpu.Ld,
	ADD_I_Vx:    cpu.Add,
	LD_F_Vx:     cpu.Ld,
	LD_B_Vx:     cpu.Ld,
	LD_I_Vx:     cpu.Ld,
	LD_Vx_I:     cpu.Ld,
}

// String returns the operation tag, e.g. SE_Vx_BYTE.
func (op Op) String() string {
	if op < numOps {
		return opNames[op]
	}
	return "??"
}

// Mnemonic returns the assembler mnemonic of the operation, e.g. SE.
func (op Op) Mnemonic() string {
	if op < numOps {
		return strings.ToUpper(cpu.OpcodeIDToName[mnemonics[op]])
	}
	return "??"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op Op

	// NNN is the 12-bit address operand.
	NNN uint16

	// KK is the byte operand.
	KK byte

	// X and Y are the register operands, N is the nibble operand.
	X, Y, N byte
}

// Decode a 16-bit instruction word. The PC is only used to annotate the
// DecodeError of an unknown word.
func Decode(word, pc uint16) (Instruction, error) {
	inst := Instruction{
		NNN: word & 0xFFF,
		KK:  byte(word),
		X:   byte(word>>8) & 0xF,
		Y:   byte(word>>4) & 0xF,
		N:   byte(word) & 0xF,
	}

	ok := true

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			inst.Op = CLS
		case 0x00EE:
			inst.Op = RET
		default:
			ok = false
		}
	case 0x1:
		inst.Op = JP_ADDR
	case 0x2:
		inst.Op = CALL_ADDR
	case 0x3:
		inst.Op = SE_Vx_BYTE
	case 0x4:
		inst.Op = SNE_Vx_BYTE
	case 0x5:
		inst.Op, ok = SE_Vx_Vy, inst.N == 0
	case 0x6:
		inst.Op = LD_Vx_BYTE
	case 0x7:
		inst.Op = ADD_Vx_BYTE
	case 0x8:
		inst.Op, ok = decodeALU(inst.N)
	case 0x9:
		inst.Op, ok = SNE_Vx_Vy, inst.N == 0
	case 0xA:
		inst.Op = LD_I_ADDR
	case 0xB:
		inst.Op = JP_V0_ADDR
	case 0xC:
		inst.Op = RND
	case 0xD:
		inst.Op = DRW
	case 0xE:
		switch inst.KK {
		case 0x9E:
			inst.Op = SKP_Vx
		case 0xA1:
			inst.Op = SKNP_Vx
		default:
			ok = false
		}
	case 0xF:
		inst.Op, ok = decodeMisc(inst.KK)
	}

	if !ok {
		return Instruction{}, &DecodeError{Word: word, PC: pc}
	}

	return inst, nil
}

// decodeALU resolves the 8xyN register-register group.
func decodeALU(n byte) (Op, bool) {
	switch n {
	case 0x0:
		return LD_Vx_Vy, true
	case 0x1:
		return OR, true
	case 0x2:
		return AND, true
	case 0x3:
		return XOR, true
	case 0x4:
		return ADD_Vx_Vy, true
	case 0x5:
		return SUB_Vx_Vy, true
	case 0x6:
		return SHR, true
	case 0x7:
		return SUBN, true
	case 0xE:
		return SHL, true
	}
	return 0, false
}

// decodeMisc resolves the FxKK group.
func decodeMisc(kk byte) (Op, bool) {
	switch kk {
	case 0x07:
		return LD_Vx_DT, true
	case 0x0A:
		return LD_Vx_K, true
	case 0x15:
		return LD_DT_Vx, true
	case 0x18:
		return LD_ST_Vx, true
	case 0x1E:
		return ADD_I_Vx, true
	case 0x29:
		return LD_F_Vx, true
	case 0x33:
		return LD_B_Vx, true
	case 0x55:
		return LD_I_Vx, true
	case 0x65:
		return LD_Vx_I, true
	}
	return 0, false
}
