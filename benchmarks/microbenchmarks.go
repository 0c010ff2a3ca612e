package benchmarks

import "github.com/sarchlab/v810/insts"

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark targets one instruction class and leaves its result in r10.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		registerSequential(),
		countdownLoop(),
		memorySequential(),
		branchTaken(),
		branchNotTaken(),
		ioPorts(),
		indirectJump(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation: a loop,
// memory traffic and branch-heavy code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		countdownLoop(),
		memorySequential(),
		branchTaken(),
	}
}

// 1. Register Sequential - straight-line register moves
func registerSequential() Benchmark {
	var body [][]uint16
	for i := 0; i < 2; i++ {
		for reg := uint8(1); reg <= 8; reg++ {
			body = append(body, EncodeMOVImm(int8(reg), reg))
		}
	}
	body = append(body, EncodeMOVReg(8, ResultRegister), EncodeHalt())

	return Benchmark{
		Name:           "register_sequential",
		Description:    "16 MOV imm plus one MOV reg - measures single-cycle throughput",
		Program:        BuildProgram(body...),
		ExpectedResult: 8,
	}
}

// 2. Countdown Loop - SUB / BNZ loop with 15 iterations
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "15-iteration SUB/BNZ loop - measures taken-branch cost",
		Program: BuildProgram(
			EncodeMOVImm(15, 1),
			EncodeMOVImm(1, 2),
			EncodeSUB(2, 1),               // loop: r1 -= 1
			EncodeBcond(insts.CondNZ, -2), // bnz loop
			EncodeMOVReg(1, ResultRegister),
			EncodeHalt(),
		),
		ExpectedResult: 0,
	}
}

// 3. Memory Sequential - word stores and loads to work RAM
func memorySequential() Benchmark {
	return Benchmark{
		Name:        "memory_sequential",
		Description: "2 ST.W then 2 LD.W to work RAM - measures load/store cost",
		Program: BuildProgram(
			EncodeMOVHI(0x0500, 0, 5), // r5 = 0x05000000
			EncodeMOVImm(7, 6),
			EncodeSTW(6, 0, 5),
			EncodeSTW(6, 4, 5),
			EncodeLDW(0, 5, 7),
			EncodeLDW(4, 5, 8),
			EncodeMOVReg(8, ResultRegister),
			EncodeHalt(),
		),
		ExpectedResult: 7,
	}
}

// 4. Branch Taken - a chain of BR to the next instruction
func branchTaken() Benchmark {
	var body [][]uint16
	for i := 0; i < 10; i++ {
		body = append(body, EncodeBcond(insts.CondT, 2))
	}
	body = append(body, EncodeMOVImm(3, ResultRegister), EncodeHalt())

	return Benchmark{
		Name:           "branch_taken",
		Description:    "10 BR +2 - every branch taken",
		Program:        BuildProgram(body...),
		ExpectedResult: 3,
	}
}

// 5. Branch Not Taken - BZ with Z clear falls through
func branchNotTaken() Benchmark {
	body := [][]uint16{
		EncodeMOVImm(1, 1),
		EncodeMOVImm(0, 2),
		EncodeSUB(2, 1), // r1 = 1 - 0, Z clear
	}
	for i := 0; i < 8; i++ {
		body = append(body, EncodeBcond(insts.CondZ, 16))
	}
	body = append(body, EncodeMOVReg(1, ResultRegister), EncodeHalt())

	return Benchmark{
		Name:           "branch_not_taken",
		Description:    "8 BZ with Z clear - every branch falls through",
		Program:        BuildProgram(body...),
		ExpectedResult: 1,
	}
}

// 6. I/O Ports - OUT then IN against the hardware control region
func ioPorts() Benchmark {
	return Benchmark{
		Name:        "io_ports",
		Description: "OUT.B/OUT.W then IN.W/IN.B - IN.B sign-extends",
		Program: BuildProgram(
			EncodeMOVHI(0x0200, 0, 5), // r5 = 0x02000000
			EncodeMOVImm(-1, 6),
			EncodeOUTW(6, 0x10, 5),
			EncodeOUTB(6, 0x14, 5),
			EncodeINW(0x10, 5, 7),
			EncodeINB(0x14, 5, ResultRegister),
			EncodeHalt(),
		),
		ExpectedResult: 0xFFFFFFFF,
	}
}

// 7. Indirect Jump - JMP over a MOV to a computed target
func indirectJump() Benchmark {
	return Benchmark{
		Name:        "indirect_jump",
		Description: "MOVHI/MOVEA address build then JMP - measures jump cost",
		Program: BuildProgram(
			EncodeMOVHI(uint16(ProgramBase>>16), 0, 5),
			EncodeMOVEA(12, 5, 5), // target below
			EncodeJMP(5),
			EncodeMOVImm(1, ResultRegister), // skipped
			EncodeMOVImm(2, ResultRegister), // target
			EncodeHalt(),
		),
		ExpectedResult: 2,
	}
}
