package beep

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func samples(p []byte) []float32 {
	s := make([]float32, len(p)/4)
	for i := range s {
		s[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return s
}

func TestBeeper_Silent(t *testing.T) {
	b := &Beeper{}

	p := make([]byte, 1024)
	n, err := b.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, 1024, n)

	for _, v := range samples(p) {
		assert.Equal(t, float32(0), v)
	}
}

func TestBeeper_SquareWave(t *testing.T) {
	b := &Beeper{}
	b.Set(true)

	period := SampleRate / Tone
	p := make([]byte, period*4*2)

	_, err := b.Read(p)
	assert.NoError(t, err)

	s := samples(p)
	assert.Equal(t, float32(volume), s[0])
	assert.Equal(t, float32(-volume), s[period/2])
	assert.Equal(t, s[0], s[period])

	b.Set(false)
	_, err = b.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, float32(0), samples(p)[0])
}

func TestBeeper_PartialSample(t *testing.T) {
	b := &Beeper{}

	n, err := b.Read(make([]byte, 10))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)
}
