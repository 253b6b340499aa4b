package chip8

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// DefaultRate is the default instructions per second. Best estimates
	/// are the RCA 1802 could interpret around 500 CHIP-8 instructions per
	/// second.
	///
	DefaultRate = 500

	/// MinRate and MaxRate bound the instruction rate.
	///
	MinRate = 1
	MaxRate = 100000

	/// TimerRate is the fixed frequency of the delay and sound timers.
	///
	TimerRate = 60

	/// FrameRate is how often Run polls the host and advances the clock.
	///
	FrameRate = 60

	/// MaxFrameDelta caps how much wall time a single Advance replays.
	///
	MaxFrameDelta = 250 * time.Millisecond
)

/// Breakpoint stops the clock before the instruction at Address executes.
///
type Breakpoint struct {
	Address uint16
	Reason  string
}

/// Clock drives a VM: instructions at a configurable rate and the timers at
/// 60 Hz, each from its own accumulator of elapsed time.
///
type Clock struct {
	vm     *VM
	logger *log.Logger

	// instructions per second and the derived period
	rate      int
	cpuPeriod time.Duration

	// elapsed time not yet spent on instructions and timer ticks
	cpuAcc   time.Duration
	timerAcc time.Duration

	paused bool

	breakpoints map[uint16]Breakpoint

	// execute the next instruction even if it is a breakpoint
	skip bool
}

/// NewClock creates a clock for vm running at rate instructions per
/// second. The logger may be nil.
///
func NewClock(vm *VM, rate int, logger *log.Logger) *Clock {
	c := &Clock{
		vm:          vm,
		logger:      logger,
		breakpoints: make(map[uint16]Breakpoint),
	}

	c.SetRate(rate)

	return c
}

/// VM returns the machine driven by the clock.
///
func (c *Clock) VM() *VM {
	return c.vm
}

/// Rate returns the instructions per second.
///
func (c *Clock) Rate() int {
	return c.rate
}

/// SetRate changes the instructions per second, clamped to MinRate and
/// MaxRate. The timer rate is unaffected.
///
func (c *Clock) SetRate(rate int) {
	if rate < MinRate {
		rate = MinRate
	}
	if rate > MaxRate {
		rate = MaxRate
	}

	c.rate = rate
	c.cpuPeriod = time.Second / time.Duration(rate)

	if c.logger != nil {
		c.logger.Debug("Clock rate", log.Int("hz", rate))
	}
}

/// Faster increases the instruction rate by 25%.
///
func (c *Clock) Faster() {
	c.SetRate(c.rate + max(c.rate/4, 1))
}

/// Slower decreases the instruction rate by 20%.
///
func (c *Clock) Slower() {
	c.SetRate(c.rate - max(c.rate/5, 1))
}

/// Pause stops instructions and timers until Resume.
///
func (c *Clock) Pause() {
	c.paused = true
}

/// Resume continues after Pause. Time spent paused is not made up.
///
func (c *Clock) Resume() {
	c.paused = false

	c.cpuAcc = 0
	c.timerAcc = 0
}

/// Paused returns true if the clock is paused.
///
func (c *Clock) Paused() bool {
	return c.paused
}

/// SetBreakpoint adds or replaces a breakpoint.
///
func (c *Clock) SetBreakpoint(b Breakpoint) {
	c.breakpoints[b.Address] = b
}

/// ClearBreakpoint removes the breakpoint at address, if any.
///
func (c *Clock) ClearBreakpoint(address uint16) {
	delete(c.breakpoints, address)
}

/// ClearBreakpoints removes every breakpoint.
///
func (c *Clock) ClearBreakpoints() {
	clear(c.breakpoints)
}

/// ToggleBreakpoint sets or clears a breakpoint at the program counter.
///
func (c *Clock) ToggleBreakpoint() {
	pc := c.vm.PC

	if _, ok := c.breakpoints[pc]; ok {
		c.ClearBreakpoint(pc)
	} else {
		c.SetBreakpoint(Breakpoint{Address: pc})
	}
}

/// Breakpoints returns all breakpoints ordered by address.
///
func (c *Clock) Breakpoints() []Breakpoint {
	bps := make([]Breakpoint, 0, len(c.breakpoints))
	for _, b := range c.breakpoints {
		bps = append(bps, b)
	}

	sort.Slice(bps, func(i, j int) bool {
		return bps[i].Address < bps[j].Address
	})

	return bps
}

/// StepOver resumes execution, ignoring a breakpoint at the program counter.
///
func (c *Clock) StepOver() {
	c.skip = true
	c.Resume()
}

/// Step executes a single instruction, even when paused or sitting on a
/// breakpoint.
///
func (c *Clock) Step() error {
	c.skip = true

	return c.step()
}

/// Advance the clock by dt of wall time, executing every instruction and
/// timer tick that became due, in the order they fell due. Unknown
/// instructions are logged and skipped. A breakpoint or fatal error pauses
/// the clock and is returned.
///
func (c *Clock) Advance(dt time.Duration) error {
	if c.paused {
		return nil
	}

	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}

	c.cpuAcc += dt
	c.timerAcc += dt

	const timerPeriod = time.Second / TimerRate

	for c.cpuAcc >= c.cpuPeriod || c.timerAcc >= timerPeriod {
		cpuLate := c.cpuAcc - c.cpuPeriod
		timerLate := c.timerAcc - timerPeriod

		// whichever is later by more fell due first
		if timerLate >= 0 && (cpuLate < 0 || timerLate >= cpuLate) {
			c.timerAcc -= timerPeriod
			c.vm.TickTimers()
			continue
		}

		c.cpuAcc -= c.cpuPeriod

		if err := c.step(); err != nil {
			c.Pause()
			return err
		}

		// the keypad won't change until the next advance, poll once
		if c.vm.Mode == AwaitingKey {
			c.cpuAcc %= c.cpuPeriod
		}
	}

	return nil
}

/// step a single instruction, honoring breakpoints.
///
func (c *Clock) step() error {
	pc := c.vm.PC

	if b, ok := c.breakpoints[pc]; ok && !c.skip && c.vm.Mode == Running {
		if c.logger != nil {
			c.logger.Info("Breakpoint", log.Hex("address", pc), log.String("reason", b.Reason))
		}

		return &BreakpointError{Breakpoint: b}
	}

	c.skip = false

	err := c.vm.Step()

	var unknown *UnknownInstructionError
	if errors.As(err, &unknown) {
		if c.logger != nil {
			c.logger.Warn("Unknown instruction",
				log.Hex("word", unknown.Word),
				log.Hex("address", unknown.PC))
		}

		return nil
	}

	return err
}

/// Run advances the clock by wall time until ctx is done, calling frame
/// before each advance so the host can poll input and render. It returns
/// ctx.Err() on cancellation, the first error frame returns, or the first
/// fatal machine error. Breakpoints pause the clock but don't stop Run.
///
func (c *Clock) Run(ctx context.Context, frame func() error) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			if frame != nil {
				if err := frame(); err != nil {
					return err
				}
			}

			if err := c.Advance(dt); IsFatal(err) {
				return err
			}
		}
	}
}
