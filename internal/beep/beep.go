// Package beep plays the CHIP-8 buzzer: a square wave while the sound timer
// is running.
package beep

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	// SampleRate of the generated wave.
	SampleRate = 44100

	// Tone is the frequency of the buzzer in Hz.
	Tone = 440

	volume = 0.15
)

// Beeper streams the buzzer to the default audio device. Set may be called
// from any goroutine; the audio device reads the wave on its own.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	on    atomic.Bool
	phase int
}

// New opens the audio device and starts streaming silence.
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(b)
	b.player.Play()

	return b, nil
}

// Set turns the buzzer on or off.
func (b *Beeper) Set(on bool) {
	b.on.Store(on)
}

// Close stops playback.
func (b *Beeper) Close() error {
	if b.player == nil {
		return nil
	}

	return b.player.Close()
}

// Read fills p with float32 samples, implementing io.Reader for the player.
func (b *Beeper) Read(p []byte) (int, error) {
	on := b.on.Load()
	period := SampleRate / Tone

	n := len(p) / 4 * 4

	for i := 0; i < n; i += 4 {
		var v float32

		if on {
			v = volume
			if b.phase >= period/2 {
				v = -volume
			}
		}

		b.phase = (b.phase + 1) % period

		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))
	}

	return n, nil
}
