package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/massung/chip8vm/chip8"
)

// ParseFlags parses command line arguments, not including the program name,
// on top of the defaults or the file given with -c. Flags set on the command
// line override file values. It returns the configuration and the ROM path,
// which is empty when romRequired is false and none was given.
func ParseFlags(name string, args []string, romRequired bool) (Config, string, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var path string
	var opts Config
	readOptionFlags(flags, &path, &opts)

	err := flags.Parse(args)
	args = flags.Args()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, flag.ErrHelp) {
			msg = ""
		}
		return Config{}, "", &UsageError{name: name, flags: flags, msg: msg}
	}

	if len(args) == 0 && romRequired {
		return Config{}, "", &UsageError{name: name, flags: flags, msg: "no ROM file given"}
	}
	if len(args) > 1 {
		return Config{}, "", &UsageError{
			name:  name,
			flags: flags,
			msg:   fmt.Sprintf("unexpected arguments after ROM file: %s", strings.Join(args[1:], " ")),
		}
	}

	cfg := Default()
	if path != "" {
		if cfg, err = Load(path); err != nil {
			return Config{}, "", err
		}
	}

	// only flags given on the command line replace file values
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rate":
			cfg.Rate = opts.Rate
		case "quirks":
			cfg.Quirks = opts.Quirks
		case "seed":
			cfg.Seed = opts.Seed
		case "scale":
			cfg.Scale = opts.Scale
		case "debug":
			cfg.Debug = opts.Debug
		case "q":
			cfg.Quiet = opts.Quiet
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}

	var rom string
	if len(args) == 1 {
		rom = args[0]
	}

	return cfg, rom, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	name  string
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s [options] <rom file>\n\n", e.name)
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

func readOptionFlags(flags *flag.FlagSet, path *string, opts *Config) {
	flags.StringVar(path, "c", "", "name of a TOML config file to load")
	flags.IntVar(&opts.Rate, "rate", chip8.DefaultRate, "instructions executed per second")
	flags.StringVar(&opts.Quirks, "quirks", "modern", "quirks profile ("+strings.Join(chip8.QuirksProfiles(), "/")+")")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 seeds from the clock")
	flags.IntVar(&opts.Scale, "scale", 5, "size of a CHIP-8 pixel in the window")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
