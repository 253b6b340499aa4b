// Package main implements a terminal front end for the CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/config"
	"github.com/massung/chip8vm/internal/beep"
	"github.com/massung/chip8vm/internal/rom"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// errQuit stops the clock when the user quits.
var errQuit = errors.New("quit")

func main() {
	cfg, file, err := config.ParseFlags("chip8term", os.Args[1:], true)
	if err != nil {
		logger := config.CreateLogger(false, false)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	// the screen owns the terminal, only errors are logged unless debugging
	logger := config.CreateLogger(cfg.Debug, !cfg.Debug)

	if err := run(app.Context(), logger, cfg, file); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, cfg config.Config, file string) error {
	img, err := rom.Read(file)
	if err != nil {
		return err
	}

	opts, err := cfg.MachineOptions()
	if err != nil {
		return err
	}

	vm := chip8.New(opts...)
	if err := vm.Load(img.Program); err != nil {
		return err
	}

	clock := chip8.NewClock(vm, cfg.Rate, logger)

	t, err := openTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer t.Close()

	beeper, err := beep.New()
	if err != nil {
		logger.Debug("Audio disabled", log.Err(err))
	} else {
		defer beeper.Close()
	}

	keys := make(chan byte, 64)
	go readKeys(os.Stdin, keys)

	pad := newKeypad(vm, keyHold)

	frame := func() error {
		now := time.Now()

		// drain everything typed since the last frame
		for drained := false; !drained; {
			select {
			case k, ok := <-keys:
				if !ok || !handleKey(k, pad, clock, now) {
					return errQuit
				}
			default:
				drained = true
			}
		}

		pad.update(now)

		if beeper != nil {
			beeper.Set(vm.Sound() && !clock.Paused())
		}

		return t.draw(Render(vm, status(clock, img.Name)))
	}

	err = clock.Run(ctx, frame)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// handleKey applies a key typed on the terminal, returning false to quit.
func handleKey(k byte, pad *keypad, clock *chip8.Clock, now time.Time) bool {
	if key, ok := keyMap[k]; ok {
		pad.press(key, now)
		return true
	}

	switch k {
	case keyCtrlC, keyEscape:
		return false
	case ' ':
		if clock.Paused() {
			clock.Resume()
		} else {
			clock.Pause()
		}
	case '[':
		clock.Slower()
	case ']':
		clock.Faster()
	case keyBackspace:
		if err := clock.VM().Restart(); err == nil {
			clock.Resume()
		}
	}

	return true
}

// status formats the line shown below the screen.
func status(clock *chip8.Clock, name string) string {
	vm := clock.VM()

	state := vm.Mode.String()
	if clock.Paused() {
		state = "paused"
	}

	sound := ""
	if vm.Sound() {
		sound = " BEEP"
	}

	return fmt.Sprintf("%s  PC #%04X  %d Hz  %s%s", name, vm.PC, clock.Rate(), state, sound)
}
