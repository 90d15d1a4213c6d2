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

const (
	// Width and Height of the pixel plane.
	Width  = 64
	Height = 32
)

// Screen is an in-memory PixelPlane. Each bit of Video is a single pixel,
// stored MSB first: pixel <0,0> is bit 0x80 of byte 0 and a row is 8 bytes.
type Screen struct {
	Video [Width * Height / 8]byte

	// OnPresent, if set, is called by Present with the screen.
	OnPresent func(*Screen)
}

// SetPixel XORs bit into the pixel at <x,y>, wrapping both coordinates,
// and returns true if a lit pixel was turned off.
func (s *Screen) SetPixel(x, y int, bit byte) bool {
	i, mask := s.index(x, y)

	if bit&1 == 0 {
		return false
	}

	erased := s.Video[i]&mask != 0
	s.Video[i] ^= mask
	return erased
}

// Pixel returns true if the pixel at <x,y> is lit.
func (s *Screen) Pixel(x, y int) bool {
	i, mask := s.index(x, y)

	return s.Video[i]&mask != 0
}

// Clear turns every pixel off.
func (s *Screen) Clear() {
	s.Video = [Width * Height / 8]byte{}
}

// Present hands the frame to OnPresent.
func (s *Screen) Present() {
	if s.OnPresent != nil {
		s.OnPresent(s)
	}
}

// index returns the video byte and bit mask of a wrapped coordinate.
func (s *Screen) index(x, y int) (int, byte) {
	x = wrap(x, Width)
	y = wrap(y, Height)

	return y*Width/8 + x>>3, 0x80 >> uint(x&7)
}

func wrap(n, size int) int {
	n %= size
	if n < 0 {
		n += size
	}
	return n
}
