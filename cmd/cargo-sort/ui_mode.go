package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// autoMode is the value of tri-state flags such as --ui and --color.
type autoMode string

const (
	modeAuto autoMode = "auto"
	modeOn   autoMode = "on"
	modeOff  autoMode = "off"
)

var _ pflag.Value = (*autoMode)(nil)

func parseAutoMode(value string) (autoMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always":
		return modeOn, nil
	case "off", "never":
		return modeOff, nil
	}
	return "", fmt.Errorf("invalid value %q (expected auto|on|off)", value)
}

func (m *autoMode) String() string { return string(*m) }

func (m *autoMode) Set(value string) error {
	parsed, err := parseAutoMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *autoMode) Type() string { return "auto|on|off" }

// enabled resolves auto against whether f is a terminal.
func (m autoMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

// autoFlag reads a tri-state flag registered with flags.Var.
func autoFlag(flags *pflag.FlagSet, name string) (autoMode, error) {
	fl := flags.Lookup(name)
	if fl == nil {
		return modeAuto, fmt.Errorf("flag --%s not defined", name)
	}
	if m, ok := fl.Value.(*autoMode); ok {
		return *m, nil
	}
	return parseAutoMode(fl.Value.String())
}
