package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/config"
	"github.com/massung/chip8vm/internal/beep"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine and the clock driving it.
	///
	VM    *chip8.VM
	Clock *chip8.Clock

	/// Logger for the terminal, Output is the on-screen console.
	///
	Logger *log.Logger
	Output *Console

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Beeper plays the buzzer, nil without an audio device.
	///
	Beeper *beep.Beeper

	/// Size of a CHIP-8 pixel in the window.
	///
	Scale int32
)

// errQuit stops the clock when the window is closed.
var errQuit = errors.New("quit")

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, file, err := config.ParseFlags(os.Args[0], os.Args[1:], false)
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

	Logger = config.CreateLogger(cfg.Debug, cfg.Quiet)

	if err := run(app.Context(), cfg, file); err != nil {
		Logger.Fatal(err.Error())
	}
}

func run(ctx context.Context, cfg config.Config, file string) error {
	opts, err := cfg.MachineOptions()
	if err != nil {
		return err
	}

	// create a new CHIP-8 virtual machine, must happen early!
	VM = chip8.New(opts...)
	Clock = chip8.NewClock(VM, cfg.Rate, Logger)
	Scale = int32(cfg.Scale)

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	w, h := Layout()

	// create the main window and renderer
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h, uint32(sdl.WINDOW_SHOWN)); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()
	defer Renderer.Destroy()

	Window.SetTitle("CHIP-8")

	// initialize subsystems
	if err = InitScreen(); err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	defer Screen.Destroy()

	Output = NewConsole(int(LogPanel.W-8) / CharWidth)

	if Beeper, err = beep.New(); err != nil {
		Logger.Warn("Audio disabled", log.Err(err))
	} else {
		defer Beeper.Close()
	}

	if file != "" {
		File = file

		if err := Load(); err != nil {
			Error("Loading failed", err)
		}
	} else {
		Info("Press F3 to load a ROM, H for help")
	}

	for {
		err := Clock.Run(ctx, Update)
		if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
			return nil
		}

		// the clock is paused on a fault, keep the debugger up
		Error("Machine fault", err)
	}
}

// paused is the clock state shown by the last Update.
var paused bool

/// Update is called once per frame before the clock advances.
///
func Update() error {
	if !ProcessEvents() {
		return errQuit
	}

	if p := Clock.Paused(); p != paused {
		if paused = p; paused {
			Info(fmt.Sprintf("Paused at #%04X", VM.PC))
		}
	}

	if Beeper != nil {
		Beeper.Set(VM.Sound() && !paused)
	}

	Refresh()

	return nil
}

/// Refresh redraws the whole window.
///
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	// frame various portions of the app
	Frame(ScreenPanel)
	Frame(AssemblyPanel)
	Frame(RegisterPanel)
	Frame(LogPanel)

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(ScreenPanel.X+1, ScreenPanel.Y+1, chip8.ScreenWidth*Scale, chip8.ScreenHeight*Scale)

	// debug assembly, virtual registers and the console
	DebugAssembly(AssemblyPanel.X+4, AssemblyPanel.Y+4, Lines(AssemblyPanel))
	DebugRegisters(RegisterPanel.X+4, RegisterPanel.Y+4)
	DebugLog(LogPanel.X+4, LogPanel.Y+4, Lines(LogPanel))

	// show the new frame
	Renderer.Present()
}

/// Frame draws a beveled border around a panel.
///
func Frame(r sdl.Rect) {
	x, y, w, h := r.X, r.Y, r.W, r.H

	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
