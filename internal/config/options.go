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

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// DefaultRate is the time between two VM ticks.
const DefaultRate = time.Second / 60

// Options are the settings shared by all front ends.
type Options struct {
	ROM string

	Speed int
	Rate  time.Duration
	Scale int

	Wrap  bool
	Trace bool
	Debug bool
	Quiet bool

	flags *flag.FlagSet
}

// ParseFlags parses the command line arguments of the program name. The ROM
// path is optional; a front end that needs one reports it with Usage.
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{flags: flags}
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, opts.Usage("")
		}
		return opts, opts.Usage(err.Error())
	}

	rest := flags.Args()
	if len(rest) > 1 {
		return opts, opts.Usage(fmt.Sprintf("unexpected argument %s after ROM file, options must come first", rest[1]))
	}
	if len(rest) == 1 {
		opts.ROM = rest[0]
	}
	if opts.Trace {
		opts.Debug = true
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// Usage returns a UsageError with the given message for these options.
func (o Options) Usage(msg string) *UsageError {
	return &UsageError{flags: o.flags, msg: msg}
}

// MemoryPolicy returns the memory policy selected by the -wrap flag.
func (o Options) MemoryPolicy() chip8.MemoryPolicy {
	if o.Wrap {
		return chip8.Wrap
	}
	return chip8.Strict
}

// VMOptions returns the options to create a VM with.
func (o Options) VMOptions(logger *log.Logger) []chip8.Option {
	return []chip8.Option{
		chip8.WithSpeed(o.Speed),
		chip8.WithLogger(logger),
		chip8.WithMemoryPolicy(o.MemoryPolicy()),
		chip8.WithTrace(o.Trace),
	}
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "usage requested"
	}
	return e.msg
}

// ShowUsage prints the error message, if any, followed by the flags.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags == nil {
		return
	}

	fmt.Printf("usage: %s [options] <rom file>\n\n", e.flags.Name())
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

func validateOptions(opts Options) error {
	switch {
	case opts.Speed < 1:
		return fmt.Errorf("invalid speed %d: at least 1 instruction per tick is required", opts.Speed)
	case opts.Rate <= 0:
		return fmt.Errorf("invalid tick rate %s", opts.Rate)
	case opts.Scale < 1:
		return fmt.Errorf("invalid scale %d", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.IntVar(&opts.Speed, "speed", chip8.DefaultSpeed, "instructions executed per tick")
	flags.DurationVar(&opts.Rate, "rate", DefaultRate, "time between two ticks")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Wrap, "wrap", false, "wrap memory accesses beyond 0xFFF instead of failing")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
}
