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

// PixelPlane is the display the VM draws into. The plane is 64x32 pixels
// and coordinates wrap on both axes.
type PixelPlane interface {
	// SetPixel XORs bit into the pixel at <x,y> and returns true if a set
	// pixel was cleared.
	SetPixel(x, y int, bit byte) bool

	// Clear zeroes the plane.
	Clear()

	// Present is called once per tick to show the current frame.
	Present()
}

// Keypad reports the state of the 16-key hexadecimal keypad.
type Keypad interface {
	// IsPressed returns true while key 0..F is held down.
	IsPressed(key byte) bool

	// OnNextKeyPress registers a one-shot handler called with the next key
	// pressed. A new registration replaces a pending one, nil removes it.
	OnNextKeyPress(fn func(key byte))
}

// Tone is the buzzer driven by the sound timer.
type Tone interface {
	Start()
	Stop()
}

// Silence is a Tone that makes no sound.
type Silence struct{}

func (Silence) Start() {}
func (Silence) Stop()  {}
