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
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Console is the on-screen output log that can be viewed and scrolled.
type Console struct {
	// buf contains each line of logged text.
	buf []string

	// pos is the current user read position within the log.
	pos int

	// width wraps lines longer than this many characters.
	width int
}

// maxConsoleLines bounds the scroll back.
const maxConsoleLines = 1000

// NewConsole creates an empty console wrapping lines at width characters.
func NewConsole(width int) *Console {
	return &Console{
		buf:   make([]string, 0, 100),
		width: width,
	}
}

// Log outputs a new line to the console.
func (c *Console) Log(s ...string) {
	scroll := c.pos == len(c.buf)

	// wrap the line to the console width
	line := strings.Join(s, " ")
	for c.width > 0 && len(line) > c.width {
		c.buf = append(c.buf, line[:c.width])
		line = "  " + line[c.width:]
	}
	c.buf = append(c.buf, line)

	// drop the oldest lines
	if n := len(c.buf) - maxConsoleLines; n > 0 {
		c.buf = append(c.buf[:0], c.buf[n:]...)
		c.pos = max(c.pos-n, 0)
	}

	if scroll {
		c.pos = len(c.buf)
	}
}

// Logln outputs a new line to the console, with an empty line prefixed.
func (c *Console) Logln(s ...string) {
	c.Log()
	c.Log(s...)
}

// Window returns the n lines ending at the read position.
func (c *Console) Window(n int) []string {
	start := c.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	if start+n >= len(c.buf) {
		return c.buf[start:]
	}

	return c.buf[start : start+n]
}

// Home scrolls the console to the beginning.
func (c *Console) Home() {
	c.pos = 0
}

// End scrolls the console to the end.
func (c *Console) End() {
	c.pos = len(c.buf)
}

// ScrollUp scrolls the console back one position.
func (c *Console) ScrollUp() {
	c.pos--

	// clamp to home
	if c.pos < 0 {
		c.Home()
	}
}

// ScrollDown scrolls the console forward one position.
func (c *Console) ScrollDown(windowSize int) {
	c.pos++

	// if less than the window size, drop to it
	if c.pos <= windowSize {
		c.pos = windowSize + 1
	}

	// clamp to end
	if c.pos >= len(c.buf) {
		c.End()
	}
}

// Info logs a message to the console and the logger.
func Info(msg string) {
	Output.Log(msg)
	Logger.Info(msg)
}

// Error logs an error to the console and the logger.
func Error(msg string, err error) {
	Output.Log(fmt.Sprintf("%s: %v", msg, err))
	Logger.Error(msg, log.Err(err))
}
