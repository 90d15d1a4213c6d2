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
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// MemoryPolicy selects what happens when an instruction addresses memory
// beyond 0xFFF.
type MemoryPolicy int

const (
	// Strict fails the tick with a MemoryError.
	Strict MemoryPolicy = iota

	// Wrap masks the address to 12 bits and logs a warning.
	Wrap
)

func (p MemoryPolicy) String() string {
	if p == Wrap {
		return "wrap"
	}
	return "strict"
}

// Status is the lifecycle state of a VM.
type Status int

const (
	// Idle is the status before a program is loaded and after a reset.
	Idle Status = iota

	// Ready is the status of a loaded VM that is executing instructions.
	Ready

	// Paused is the status while an LD Vx, K instruction waits for a key.
	Paused
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Paused:
		return "paused"
	}
	return "idle"
}

// VM drives a CHIP-8 State: it owns the state exclusively and executes
// batches of instructions per tick against the display, keypad and tone
// it was created with. A VM is not safe for concurrent use; the caller
// must not overlap calls to Tick, Step, KeyPress, Load and Reset.
type VM struct {
	state  State
	loaded bool

	// speed is how many instructions are executed per tick.
	speed int

	display PixelPlane
	keys    Keypad
	tone    Tone

	logger *log.Logger
	trace  bool

	env env
}

// Option configures a VM.
type Option func(*VM)

// WithSpeed sets the number of instructions executed per tick.
func WithSpeed(n int) Option {
	return func(vm *VM) {
		vm.SetSpeed(n)
	}
}

// WithLogger sets the logger used for lifecycle events and warnings.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
	}
}

// WithMemoryPolicy sets how out of range memory accesses are handled.
func WithMemoryPolicy(policy MemoryPolicy) Option {
	return func(vm *VM) {
		vm.env.policy = policy
	}
}

// WithRandom replaces the source of random bytes used by RND.
func WithRandom(fn func() byte) Option {
	return func(vm *VM) {
		vm.env.rand = fn
	}
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(vm *VM) {
		vm.trace = trace
	}
}

// New creates an idle VM. The display, keypad and tone are referenced, not
// owned: their lifetime is managed by the caller.
func New(display PixelPlane, keys Keypad, tone Tone, options ...Option) *VM {
	vm := &VM{
		state:   NewState(),
		speed:   DefaultSpeed,
		display: display,
		keys:    keys,
		tone:    tone,
	}

	vm.env = env{
		display: display,
		keys:    keys,
		rand:    randomByte,
		policy:  Strict,
	}

	for _, option := range options {
		option(vm)
	}

	if vm.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		vm.logger = log.NewWithConfig(cfg)
	}

	vm.env.wrapped = vm.wrapped
	return vm
}

// Load resets the VM and copies program into memory at 0x200. A program
// that does not fit is rejected before anything is changed.
func (vm *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &LoadError{Size: len(program), Max: MaxProgramSize}
	}

	vm.Reset()

	copy(vm.state.Memory[ProgramStart:], program)
	vm.loaded = true

	vm.logger.Info("Program loaded",
		log.Int("size", len(program)),
		log.Int("speed", vm.speed),
		log.Stringer("memory", vm.env.policy))
	return nil
}

// Reset returns the VM to idle. Any pending key wait is dropped, the
// display is cleared and the tone silenced.
func (vm *VM) Reset() {
	vm.keys.OnNextKeyPress(nil)
	vm.state.Reset()
	vm.loaded = false

	vm.display.Clear()
	vm.tone.Stop()

	vm.logger.Debug("VM reset")
}

// SetSpeed sets the number of instructions executed per tick. Values below
// 1 are raised to 1.
func (vm *VM) SetSpeed(n int) {
	if n < 1 {
		n = 1
	}
	vm.speed = n
}

// Speed returns the number of instructions executed per tick.
func (vm *VM) Speed() int {
	return vm.speed
}

// Status returns the lifecycle status of the VM.
func (vm *VM) Status() Status {
	switch {
	case !vm.loaded:
		return Idle
	case vm.state.Paused:
		return Paused
	}
	return Ready
}

// State returns a copy of the current machine state.
func (vm *VM) State() State {
	return vm.state
}

// Tick advances the VM by one scheduling quantum: up to speed instructions
// are executed (a paused VM still consumes the budget), both timers are
// decremented once, the tone is started or stopped from the sound timer
// and the display is presented. An error aborts the tick.
func (vm *VM) Tick() error {
	if !vm.loaded {
		return ErrNotLoaded
	}

	for i := 0; i < vm.speed; i++ {
		if vm.state.Paused {
			continue
		}

		if err := vm.step(); err != nil {
			return err
		}
	}

	if vm.state.DT > 0 {
		vm.state.DT--
	}
	if vm.state.ST > 0 {
		vm.state.ST--
	}

	if vm.state.ST > 0 {
		vm.tone.Start()
	} else {
		vm.tone.Stop()
	}

	vm.display.Present()
	return nil
}

// Step executes a single instruction without touching the timers or the
// display. It does nothing while the VM waits for a key.
func (vm *VM) Step() error {
	if !vm.loaded {
		return ErrNotLoaded
	}
	if vm.state.Paused {
		return nil
	}
	return vm.step()
}

// KeyPress completes a pending LD Vx, K: the key is written to the target
// register and execution resumes. Without a pending request it does
// nothing.
func (vm *VM) KeyPress(key byte) {
	wait := vm.state.Wait
	if !wait.Pending {
		return
	}

	vm.state.V[wait.Register] = key & 0xF
	vm.state.Wait = KeyWait{}
	vm.state.Paused = false

	vm.logger.Debug("Key wait resumed",
		log.Hex("key", key&0xF),
		log.Int("register", int(wait.Register)))
}

// step fetches, decodes and executes the instruction at PC. The resulting
// state is only committed when the instruction succeeds.
func (vm *VM) step() error {
	pc := vm.state.PC

	word, err := vm.fetch(pc)
	if err != nil {
		return err
	}

	inst, err := Decode(word, pc)
	if err != nil {
		return err
	}

	if vm.trace {
		vm.logger.Debug("Execute",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("op", inst.Op.String()),
			log.String("asm", inst.String()))
	}

	s := vm.state
	s.PC = vm.address(pc + 2)

	next, err := operations[inst.Op](s, inst, &vm.env)
	if err != nil {
		return err
	}
	next.PC = vm.address(next.PC)

	waiting := next.Wait.Pending && !vm.state.Wait.Pending
	vm.state = next

	if waiting {
		vm.logger.Debug("Waiting for key",
			log.Hex("pc", pc),
			log.Int("register", int(next.Wait.Register)))

		vm.keys.OnNextKeyPress(vm.KeyPress)
	}
	return nil
}

// fetch the 16-bit big-endian instruction word at pc.
func (vm *VM) fetch(pc uint16) (uint16, error) {
	if uint(pc)+2 > MemorySize {
		addr := uint(pc)
		if addr < MemorySize {
			addr = MemorySize
		}

		if vm.env.policy == Strict {
			return 0, &MemoryError{Addr: addr, PC: pc}
		}
		vm.wrapped(addr, pc)
	}

	hi := vm.state.Memory[uint(pc)&0xFFF]
	lo := vm.state.Memory[(uint(pc)+1)&0xFFF]

	return uint16(hi)<<8 | uint16(lo), nil
}

// address masks a program counter to 12 bits under the Wrap policy.
func (vm *VM) address(pc uint16) uint16 {
	if vm.env.policy == Wrap {
		return pc & 0xFFF
	}
	return pc
}

// wrapped logs a memory access that was wrapped around.
func (vm *VM) wrapped(addr uint, pc uint16) {
	vm.logger.Warn("Memory access wrapped",
		log.Hex("address", addr),
		log.Hex("pc", pc))
}

func randomByte() byte {
	return byte(rand.UintN(256))
}
