package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Window(t *testing.T) {
	assert := assert.New(t)

	c := NewConsole(0)
	for _, s := range []string{"a", "b", "c", "d"} {
		c.Log(s)
	}

	assert.Equal([]string{"c", "d"}, c.Window(2))

	c.ScrollUp()
	assert.Equal([]string{"b", "c"}, c.Window(2))

	c.Home()
	assert.Equal([]string{"a", "b"}, c.Window(2))

	// new lines don't scroll a console the user moved
	c.Log("e")
	assert.Equal([]string{"a", "b"}, c.Window(2))

	c.End()
	assert.Equal([]string{"d", "e"}, c.Window(2))
}

func TestConsole_Logln(t *testing.T) {
	c := NewConsole(0)
	c.Logln("hello", "world")

	assert.Equal(t, []string{"", "hello world"}, c.Window(10))
}

func TestConsole_Wrap(t *testing.T) {
	c := NewConsole(5)
	c.Log("abcdefgh")

	assert.Equal(t, []string{"abcde", "  fgh"}, c.Window(10))
}

func TestConsole_Limit(t *testing.T) {
	c := NewConsole(0)
	for i := 0; i < maxConsoleLines+10; i++ {
		c.Log("x")
	}

	assert.Len(t, c.buf, maxConsoleLines)
	assert.Equal(t, maxConsoleLines, c.pos)
}
