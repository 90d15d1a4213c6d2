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
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type testTone struct {
	playing bool
	starts  int
	stops   int
}

func (t *testTone) Start() {
	t.playing = true
	t.starts++
}

func (t *testTone) Stop() {
	t.playing = false
	t.stops++
}

type testRig struct {
	vm       *VM
	screen   *Screen
	keys     *Keys
	tone     *testTone
	presents int
}

func newTestRig(t *testing.T, options ...Option) *testRig {
	t.Helper()

	rig := &testRig{
		screen: &Screen{},
		keys:   &Keys{},
		tone:   &testTone{},
	}
	rig.screen.OnPresent = func(*Screen) {
		rig.presents++
	}

	options = append([]Option{WithLogger(log.NewTestLogger(t))}, options...)
	rig.vm = New(rig.screen, rig.keys, rig.tone, options...)
	return rig
}

// words encodes instruction words as a big-endian program.
func words(ws ...uint16) []byte {
	program := make([]byte, 0, len(ws)*2)
	for _, w := range ws {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func TestTickIdle(t *testing.T) {
	rig := newTestRig(t)

	assert.Equal(t, Idle, rig.vm.Status())
	assert.True(t, errors.Is(rig.vm.Tick(), ErrNotLoaded))
	assert.True(t, errors.Is(rig.vm.Step(), ErrNotLoaded))
	assert.Equal(t, 0, rig.presents)
}

func TestTickBudget(t *testing.T) {
	rig := newTestRig(t, WithSpeed(3))

	// four increments of V0, only three fit into a tick
	assert.NoError(t, rig.vm.Load(words(0x7001, 0x7001, 0x7001, 0x7001, 0x1208)))
	assert.Equal(t, Ready, rig.vm.Status())

	assert.NoError(t, rig.vm.Tick())
	s := rig.vm.State()
	assert.Equal(t, byte(3), s.V[0])
	assert.Equal(t, uint16(0x206), s.PC)
	assert.Equal(t, 1, rig.presents)

	assert.NoError(t, rig.vm.Tick())
	s = rig.vm.State()
	assert.Equal(t, byte(4), s.V[0])
	assert.Equal(t, uint16(0x208), s.PC)
	assert.Equal(t, 2, rig.presents)
}

func TestSetSpeed(t *testing.T) {
	rig := newTestRig(t)
	assert.Equal(t, DefaultSpeed, rig.vm.Speed())

	rig.vm.SetSpeed(25)
	assert.Equal(t, 25, rig.vm.Speed())

	rig.vm.SetSpeed(0)
	assert.Equal(t, 1, rig.vm.Speed())

	rig.vm.SetSpeed(-4)
	assert.Equal(t, 1, rig.vm.Speed())
}

func TestTimersAndTone(t *testing.T) {
	rig := newTestRig(t, WithSpeed(1))

	// V0 = 3, DT = V0, ST = V0, then spin
	assert.NoError(t, rig.vm.Load(words(0x6003, 0xF015, 0xF018, 0x1206)))

	assert.NoError(t, rig.vm.Tick())
	assert.NoError(t, rig.vm.Tick())
	s := rig.vm.State()
	assert.Equal(t, byte(2), s.DT)
	assert.Equal(t, byte(0), s.ST)
	assert.False(t, rig.tone.playing)

	assert.NoError(t, rig.vm.Tick())
	s = rig.vm.State()
	assert.Equal(t, byte(1), s.DT)
	assert.Equal(t, byte(2), s.ST)
	assert.True(t, rig.tone.playing)

	assert.NoError(t, rig.vm.Tick())
	assert.True(t, rig.tone.playing)

	assert.NoError(t, rig.vm.Tick())
	s = rig.vm.State()
	assert.Equal(t, byte(0), s.DT)
	assert.Equal(t, byte(0), s.ST)
	assert.False(t, rig.tone.playing)

	// timers stay at zero
	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, byte(0), rig.vm.State().DT)
}

func TestKeyWait(t *testing.T) {
	rig := newTestRig(t, WithSpeed(4))

	// V0 = 1, wait for a key into V5, V0 += 1
	assert.NoError(t, rig.vm.Load(words(0x6001, 0xF50A, 0x7001, 0x1206)))

	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, Paused, rig.vm.Status())
	assert.True(t, rig.keys.Pending())

	s := rig.vm.State()
	assert.Equal(t, uint16(0x204), s.PC)
	assert.Equal(t, byte(1), s.V[0])
	assert.Equal(t, KeyWait{Pending: true, Register: 5}, s.Wait)

	// paused ticks execute nothing, but still present and run the timers
	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, uint16(0x204), rig.vm.State().PC)
	assert.Equal(t, 2, rig.presents)

	assert.NoError(t, rig.vm.Step())
	assert.Equal(t, uint16(0x204), rig.vm.State().PC)

	rig.keys.PressKey(0xB)
	assert.Equal(t, Ready, rig.vm.Status())
	assert.False(t, rig.keys.Pending())

	s = rig.vm.State()
	assert.Equal(t, byte(0xB), s.V[5])
	assert.False(t, s.Wait.Pending)

	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, byte(2), rig.vm.State().V[0])
}

func TestTimersRunWhilePaused(t *testing.T) {
	rig := newTestRig(t, WithSpeed(2))

	// V0 = 5, DT = V0, wait for a key
	assert.NoError(t, rig.vm.Load(words(0x6005, 0xF015, 0xF00A)))

	assert.NoError(t, rig.vm.Tick())
	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, Paused, rig.vm.Status())
	assert.Equal(t, byte(3), rig.vm.State().DT)

	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, byte(2), rig.vm.State().DT)
}

func TestKeyPressWithoutWait(t *testing.T) {
	rig := newTestRig(t)
	assert.NoError(t, rig.vm.Load(words(0x1200)))

	before := rig.vm.State()
	rig.vm.KeyPress(3)
	assert.Equal(t, before, rig.vm.State())
}

func TestResetDropsKeyWait(t *testing.T) {
	rig := newTestRig(t)

	assert.NoError(t, rig.vm.Load(words(0xF30A)))
	assert.NoError(t, rig.vm.Tick())
	assert.True(t, rig.keys.Pending())

	rig.vm.Reset()
	assert.Equal(t, Idle, rig.vm.Status())
	assert.False(t, rig.keys.Pending())

	// a late key press has nowhere to go
	rig.keys.PressKey(1)
	assert.Equal(t, byte(0), rig.vm.State().V[3])
}

func TestReset(t *testing.T) {
	rig := newTestRig(t, WithSpeed(2))

	// V0 = 3, ST = V0, then draw glyph 0 at <V1,V1> = <0,0>
	assert.NoError(t, rig.vm.Load(words(0x6003, 0xF018, 0xD115, 0x1206)))
	assert.NoError(t, rig.vm.Tick())
	assert.NoError(t, rig.vm.Tick())
	assert.True(t, rig.screen.Pixel(0, 0))
	assert.True(t, rig.tone.playing)

	rig.vm.Reset()
	assert.Equal(t, Idle, rig.vm.Status())
	assert.False(t, rig.screen.Pixel(0, 0))
	assert.False(t, rig.tone.playing)

	s := rig.vm.State()
	assert.Equal(t, NewState(), s)
	assert.Equal(t, uint16(ProgramStart), s.PC)
	assert.Equal(t, Glyphs, [80]byte(s.Memory[:80]))

	rig.vm.Reset()
	assert.Equal(t, NewState(), rig.vm.State())
}

func TestLoad(t *testing.T) {
	rig := newTestRig(t)

	assert.NoError(t, rig.vm.Load(words(0x1234, 0xABCD)))
	s := rig.vm.State()
	assert.Equal(t, [4]byte{0x12, 0x34, 0xAB, 0xCD}, [4]byte(s.Memory[ProgramStart:ProgramStart+4]))

	// a second load starts from a clean machine
	assert.NoError(t, rig.vm.Load(words(0x00E0)))
	s = rig.vm.State()
	assert.Equal(t, [4]byte{0x00, 0xE0, 0, 0}, [4]byte(s.Memory[ProgramStart:ProgramStart+4]))

	full := make([]byte, MaxProgramSize)
	full[len(full)-1] = 0x77
	assert.NoError(t, rig.vm.Load(full))
	assert.Equal(t, byte(0x77), rig.vm.State().Memory[MemorySize-1])
}

func TestLoadTooLarge(t *testing.T) {
	rig := newTestRig(t)
	assert.NoError(t, rig.vm.Load(words(0x6042)))
	assert.NoError(t, rig.vm.Step())
	before := rig.vm.State()

	err := rig.vm.Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Equal(t, MaxProgramSize+1, loadErr.Size)
	assert.Equal(t, MaxProgramSize, loadErr.Max)

	// nothing changed
	assert.Equal(t, before, rig.vm.State())
	assert.Equal(t, Ready, rig.vm.Status())
}

func TestTickErrorAborts(t *testing.T) {
	rig := newTestRig(t, WithSpeed(5))

	// V0 = 7, then an unknown opcode
	assert.NoError(t, rig.vm.Load(words(0x6007, 0xFFFF)))

	err := rig.vm.Tick()
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, uint16(0xFFFF), decodeErr.Word)
	assert.Equal(t, uint16(0x202), decodeErr.PC)

	s := rig.vm.State()
	assert.Equal(t, byte(7), s.V[0])
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, 0, rig.presents)

	// the failure repeats, nothing advances
	assert.Error(t, rig.vm.Tick())
	assert.Equal(t, uint16(0x202), rig.vm.State().PC)
}

func TestTickStackUnderflow(t *testing.T) {
	rig := newTestRig(t)
	assert.NoError(t, rig.vm.Load(words(0x00EE)))

	err := rig.vm.Tick()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), rig.vm.State().PC)
}

func TestCallAndReturn(t *testing.T) {
	rig := newTestRig(t, WithSpeed(1))

	// CALL 0x206, V1 = 2, spin; subroutine: V0 = 1, RET
	assert.NoError(t, rig.vm.Load(words(0x2206, 0x6102, 0x1204, 0x6001, 0x00EE)))

	assert.NoError(t, rig.vm.Tick())
	s := rig.vm.State()
	assert.Equal(t, uint16(0x206), s.PC)
	assert.Equal(t, 1, s.Depth())

	assert.NoError(t, rig.vm.Tick())
	assert.NoError(t, rig.vm.Tick())
	s = rig.vm.State()
	assert.Equal(t, uint16(0x202), s.PC)
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, byte(1), s.V[0])

	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, byte(2), rig.vm.State().V[1])
}

func TestSkipThroughTick(t *testing.T) {
	rig := newTestRig(t, WithSpeed(1))

	// V0 = 4, SE V0, 4 (skips), V1 = 1 (skipped), SE V0, 5 (not taken)
	assert.NoError(t, rig.vm.Load(words(0x6004, 0x3004, 0x6101, 0x3005, 0x6202)))

	assert.NoError(t, rig.vm.Tick())
	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, uint16(0x206), rig.vm.State().PC)

	assert.NoError(t, rig.vm.Tick())
	assert.Equal(t, uint16(0x208), rig.vm.State().PC)

	assert.NoError(t, rig.vm.Tick())
	s := rig.vm.State()
	assert.Equal(t, byte(0), s.V[1])
	assert.Equal(t, byte(2), s.V[2])
}

func TestFetchPolicy(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		rig := newTestRig(t)
		assert.NoError(t, rig.vm.Load(words(0x1FFF)))

		assert.NoError(t, rig.vm.Step())
		err := rig.vm.Step()

		var memErr *MemoryError
		assert.True(t, errors.As(err, &memErr))
		assert.True(t, errors.Is(err, ErrMemoryRange))
		assert.Equal(t, uint(MemorySize), memErr.Addr)
		assert.Equal(t, uint16(0xFFF), memErr.PC)
	})

	t.Run("wrap", func(t *testing.T) {
		rig := newTestRig(t, WithMemoryPolicy(Wrap))
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0x60 // 0xFFF
		copy(program, words(0x1FFF))   // 0x200
		assert.NoError(t, rig.vm.Load(program))

		// the word at 0xFFF wraps to 0x000, the first glyph byte
		assert.NoError(t, rig.vm.Step())
		assert.NoError(t, rig.vm.Step())
		s := rig.vm.State()
		assert.Equal(t, Glyphs[0], s.V[0])
		assert.Equal(t, uint16(0x001), s.PC)
	})

	t.Run("wrap call", func(t *testing.T) {
		rig := newTestRig(t, WithMemoryPolicy(Wrap))
		program := make([]byte, MaxProgramSize)
		copy(program, words(0x1FFE))                  // 0x200
		copy(program[0x100:], words(0x00EE))          // 0x300
		copy(program[len(program)-2:], words(0x2300)) // 0xFFE
		assert.NoError(t, rig.vm.Load(program))

		assert.NoError(t, rig.vm.Step())
		assert.NoError(t, rig.vm.Step())
		s := rig.vm.State()
		assert.Equal(t, uint16(0x300), s.PC)
		assert.Equal(t, uint16(0x000), s.Stack[0])

		assert.NoError(t, rig.vm.Step())
		assert.Equal(t, uint16(0x000), rig.vm.State().PC)
	})

	t.Run("wrap jump", func(t *testing.T) {
		rig := newTestRig(t, WithMemoryPolicy(Wrap))

		// V0 = 0x10, JP V0, 0xFFF
		assert.NoError(t, rig.vm.Load(words(0x6010, 0xBFFF)))
		assert.NoError(t, rig.vm.Step())
		assert.NoError(t, rig.vm.Step())
		assert.Equal(t, uint16(0x00F), rig.vm.State().PC)
	})

	t.Run("strict jump", func(t *testing.T) {
		rig := newTestRig(t)

		assert.NoError(t, rig.vm.Load(words(0x6010, 0xBFFF)))
		assert.NoError(t, rig.vm.Step())
		assert.NoError(t, rig.vm.Step())
		assert.Equal(t, uint16(0x100F), rig.vm.State().PC)
		assert.True(t, errors.Is(rig.vm.Step(), ErrMemoryRange))
	})
}

func TestRandom(t *testing.T) {
	rig := newTestRig(t, WithRandom(func() byte { return 0x3C }))
	assert.NoError(t, rig.vm.Load(words(0xC0F0)))

	assert.NoError(t, rig.vm.Step())
	assert.Equal(t, byte(0x30), rig.vm.State().V[0])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "strict", Strict.String())
	assert.Equal(t, "wrap", Wrap.String())
}
