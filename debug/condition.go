// Package debug evaluates breakpoint expressions against the register file.
//
// Expressions are Starlark and see the following names:
//
//	pc, psw      program counter and packed PSW
//	r0 .. r31    general registers
//	z, s, ov, cy condition flags as booleans
//	id, ep, np   interrupt disable, exception and NMI pending
//	iml          interrupt mask level
//
// For example "pc == 0x07000010 and r10 > 3".
package debug

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/translate"
)

var f = translate.From

// ErrCondition is returned for expressions that do not parse or evaluate.
var ErrCondition = errors.New(f("invalid condition"))

var names = func() map[string]bool {
	m := map[string]bool{
		"pc": true, "psw": true,
		"z": true, "s": true, "ov": true, "cy": true,
		"id": true, "ep": true, "np": true, "iml": true,
	}
	for i := 0; i < 32; i++ {
		m[fmt.Sprintf("r%d", i)] = true
	}
	return m
}()

// Condition is a compiled breakpoint expression.
type Condition struct {
	expr string
	prog *starlark.Program
}

// Parse compiles expr. Unknown names are reported here rather than on the
// first evaluation.
func Parse(expr string) (*Condition, error) {
	src := "rc=" + expr + "\n"
	opts := syntax.FileOptions{}

	_, prog, err := starlark.SourceProgramOptions(&opts, "until", src,
		func(name string) bool { return names[name] })
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCondition, f("%q: %v", expr, err))
	}

	return &Condition{expr: expr, prog: prog}, nil
}

// String returns the source expression.
func (c *Condition) String() string {
	return c.expr
}

// Eval reports whether the expression is true for regFile.
func (c *Condition) Eval(regFile *emu.RegFile) (bool, error) {
	thread := starlark.Thread{Name: "until"}

	globals, err := c.prog.Init(&thread, predeclared(regFile))
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrCondition, f("%q: %v", c.expr, err))
	}

	rc, ok := globals["rc"]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrCondition, f("%q: no result", c.expr))
	}

	return bool(rc.Truth()), nil
}

// StopCondition adapts c for emu.WithStopCondition.
func (c *Condition) StopCondition() emu.StopCondition {
	return c.Eval
}

func predeclared(regFile *emu.RegFile) starlark.StringDict {
	psw := regFile.PSW

	dict := starlark.StringDict{
		"pc":  starlark.MakeUint64(uint64(regFile.PC)),
		"psw": starlark.MakeUint64(uint64(regFile.ReadPSW())),
		"z":   starlark.Bool(psw.Zero),
		"s":   starlark.Bool(psw.Sign),
		"ov":  starlark.Bool(psw.Overflow),
		"cy":  starlark.Bool(psw.Carry),
		"id":  starlark.Bool(psw.InterruptDisable),
		"ep":  starlark.Bool(psw.ExceptionPending),
		"np":  starlark.Bool(psw.NMIPending),
		"iml": starlark.MakeInt(int(psw.InterruptMaskLevel)),
	}
	for i := uint8(0); i < 32; i++ {
		dict[fmt.Sprintf("r%d", i)] = starlark.MakeUint64(uint64(regFile.ReadReg(i)))
	}

	return dict
}
