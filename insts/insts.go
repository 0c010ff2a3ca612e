// Package insts provides V810 instruction definitions and decoding.
//
// V810 instructions are one or two 16-bit halfwords. The first halfword
// carries the major opcode and selects an instruction format, and the
// format alone decides whether a second halfword follows. This package
// supports:
//   - Format I (register-register): MOV, SUB, JMP
//   - Format II (5-bit immediate): MOV imm, CLI, LDSR, SEI
//   - Conditional branches: the sixteen Bcond encodings, including BR and NOP
//   - Format V (16-bit immediate): MOVEA, MOVHI
//   - Format VI (16-bit displacement): LD, ST, IN and OUT in byte, halfword
//     and word widths
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	op := decoder.Decode(0xA021) // MOVEA
//	inst := decoder.DecodeInstruction(0xA021, 0x1234)
//	fmt.Println(inst) // movea 0x1234, r1, r1
package insts
