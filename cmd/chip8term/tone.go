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
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneFreq   = 440
	volume     = 0.2
)

// squareWave is an endless mono float32 square wave.
type squareWave struct {
	pos int
}

func (w *squareWave) Read(buf []byte) (int, error) {
	period := sampleRate / toneFreq

	n := len(buf) / 4 * 4
	for i := 0; i < n; i += 4 {
		sample := float32(volume)
		if w.pos >= period/2 {
			sample = -volume
		}
		binary.LittleEndian.PutUint32(buf[i:], math.Float32bits(sample))

		w.pos = (w.pos + 1) % period
	}
	return n, nil
}

// otoTone is a chip8.Tone playing through oto.
type otoTone struct {
	player *oto.Player
}

func newTone() (*otoTone, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &otoTone{
		player: ctx.NewPlayer(&squareWave{}),
	}, nil
}

// Start playing the tone.
func (t *otoTone) Start() {
	if !t.player.IsPlaying() {
		t.player.Play()
	}
}

// Stop playing the tone.
func (t *otoTone) Stop() {
	if t.player.IsPlaying() {
		t.player.Pause()
	}
}

// Close releases the player.
func (t *otoTone) Close() error {
	return t.player.Close()
}
