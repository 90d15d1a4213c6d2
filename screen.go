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
	"github.com/massung/CHIP-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

// frames is the number of presented frames a pixel stays visible for while
// persistence is enabled.
const frames = 3

// sdlScreen is a chip8.Screen rendered to the window on Present.
type sdlScreen struct {
	chip8.Screen

	renderer *sdl.Renderer
	scale    int32

	// persist keeps pixels lit for a few frames to hide sprite flicker.
	persist bool

	history [frames][chip8.Width * chip8.Height / 8]byte
	frame   int
}

func newScreen(renderer *sdl.Renderer, scale int32) *sdlScreen {
	return &sdlScreen{
		renderer: renderer,
		scale:    scale,
		persist:  true,
	}
}

// TogglePersistence switches phosphor persistence on or off.
func (s *sdlScreen) TogglePersistence() {
	s.persist = !s.persist
}

// Clear the video memory and the persisted frames.
func (s *sdlScreen) Clear() {
	s.Screen.Clear()
	s.history = [frames][chip8.Width * chip8.Height / 8]byte{}
}

// Present renders the video memory to the window.
func (s *sdlScreen) Present() {
	s.history[s.frame] = s.Video
	s.frame = (s.frame + 1) % frames

	video := s.Video
	if s.persist {
		for _, f := range s.history {
			for i := range video {
				video[i] |= f[i]
			}
		}
	}

	// background
	_ = s.renderer.SetDrawColor(143, 145, 133, 255)
	_ = s.renderer.Clear()

	// pixels
	_ = s.renderer.SetDrawColor(17, 29, 43, 255)

	rect := sdl.Rect{W: s.scale, H: s.scale}
	for p := range chip8.Width * chip8.Height {
		if video[p>>3]&(0x80>>uint(p&7)) == 0 {
			continue
		}

		rect.X = int32(p%chip8.Width) * s.scale
		rect.Y = int32(p/chip8.Width) * s.scale

		_ = s.renderer.FillRect(&rect)
	}

	s.renderer.Present()
}
