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

// Package config handles front end configuration and setup.
package config

import (
	"fmt"
	"os"

	"github.com/massung/CHIP-8/chip8"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// PrintBanner logs the program name and version unless quiet.
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// ReadROM reads the program file at path, rejecting files that do not fit
// into the program area.
func ReadROM(path string) ([]byte, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file '%s': %w", path, err)
	}
	if len(program) == 0 {
		return nil, fmt.Errorf("ROM file '%s' is empty", path)
	}
	if len(program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("ROM file '%s': %w", path,
			&chip8.LoadError{Size: len(program), Max: chip8.MaxProgramSize})
	}
	return program, nil
}
