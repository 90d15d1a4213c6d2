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

// Keys is a Keypad driven by the front end: it tracks which of the 16 keys
// are held and dispatches the next press to a registered one-shot handler.
type Keys struct {
	down [16]bool
	next func(key byte)
}

// IsPressed returns true while key is held down.
func (k *Keys) IsPressed(key byte) bool {
	return key < 16 && k.down[key]
}

// OnNextKeyPress registers fn for the next key press, replacing any handler
// still pending. A nil fn removes the pending handler.
func (k *Keys) OnNextKeyPress(fn func(key byte)) {
	k.next = fn
}

// Pending returns true if a handler is waiting for a key press.
func (k *Keys) Pending() bool {
	return k.next != nil
}

// PressKey emulates a CHIP-8 key being pressed. The pending handler, if
// any, is removed and then called with the key.
func (k *Keys) PressKey(key byte) {
	if key >= 16 {
		return
	}

	k.down[key] = true

	if fn := k.next; fn != nil {
		k.next = nil
		fn(key)
	}
}

// ReleaseKey emulates a CHIP-8 key being released.
func (k *Keys) ReleaseKey(key byte) {
	if key < 16 {
		k.down[key] = false
	}
}

// ReleaseAll releases every key.
func (k *Keys) ReleaseAll() {
	k.down = [16]bool{}
}
