// Package emu provides functional V810 emulation.
package emu

import (
	"errors"

	"github.com/sarchlab/v810/translate"
)

var f = translate.From

var (
	// ErrUnknownOpcode is returned when the halfword at PC is not in the
	// opcode table.
	ErrUnknownOpcode = errors.New(f("unknown opcode"))

	// ErrSystemRegister is returned when LDSR selects a system register
	// other than PSW.
	ErrSystemRegister = errors.New(f("system register not implemented"))

	// ErrMaxInstructions is returned once the instruction limit set with
	// WithMaxInstructions has been reached.
	ErrMaxInstructions = errors.New(f("max instructions reached"))
)
