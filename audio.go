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
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	toneFreq   = 440
	amplitude  = 24
)

// sdlTone plays a square wave through a queued SDL audio device.
type sdlTone struct {
	device  sdl.AudioDeviceID
	period  []byte
	playing bool
}

func newTone() (*sdlTone, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	device, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return nil, err
	}

	// a single period of the wave, unsigned samples centered at 0x80
	period := make([]byte, sampleRate/toneFreq)
	for i := range period {
		if i < len(period)/2 {
			period[i] = 0x80 + amplitude
		} else {
			period[i] = 0x80 - amplitude
		}
	}

	return &sdlTone{
		device: device,
		period: period,
	}, nil
}

// Start the tone, or keep it fed while it is already playing. Called once
// per tick while the sound timer is running.
func (t *sdlTone) Start() {
	// keep about two ticks of samples queued
	for sdl.GetQueuedAudioSize(t.device) < sampleRate/30 {
		if err := sdl.QueueAudio(t.device, t.period); err != nil {
			return
		}
	}

	if !t.playing {
		sdl.PauseAudioDevice(t.device, false)
		t.playing = true
	}
}

// Stop the tone and drop any queued samples.
func (t *sdlTone) Stop() {
	if !t.playing {
		return
	}

	sdl.PauseAudioDevice(t.device, true)
	sdl.ClearQueuedAudio(t.device)
	t.playing = false
}

// Close the audio device.
func (t *sdlTone) Close() {
	sdl.CloseAudioDevice(t.device)
}
