package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	Scale = 5
	w, h := Layout()

	assert.Equal(int32(550), w)
	assert.Equal(int32(348), h)
	assert.Equal(int32(322), ScreenPanel.W)
	assert.Equal(int32(338), AssemblyPanel.X)
	assert.Equal(int32(176), LogPanel.Y)
	assert.Equal(11, Lines(AssemblyPanel))
	assert.Equal(12, Lines(LogPanel))
}

func TestLayout_Scaled(t *testing.T) {
	Scale = 10
	w, h := Layout()

	assert.Equal(t, int32(8+642+8+204+8), w)
	assert.Equal(t, int32(8+322+6+164+8), h)
	assert.Equal(t, ScreenPanel.H, AssemblyPanel.H)
}
