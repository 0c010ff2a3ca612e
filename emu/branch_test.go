package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/insts"
)

var _ = Describe("BranchUnit", func() {
	var (
		regFile    *emu.RegFile
		branchUnit *emu.BranchUnit
	)

	BeforeEach(func() {
		regFile = emu.NewRegFile()
		regFile.PC = 0x1000
		branchUnit = emu.NewBranchUnit(regFile)
	})

	setFlags := func(sign, overflow, zero, carry bool) {
		regFile.PSW.Sign = sign
		regFile.PSW.Overflow = overflow
		regFile.PSW.Zero = zero
		regFile.PSW.Carry = carry
	}

	Describe("JMP", func() {
		It("should return the address in the register", func() {
			regFile.WriteReg(7, 0x07000000)
			Expect(branchUnit.JMP(7)).To(Equal(uint32(0x07000000)))
		})
	})

	Describe("Bcond", func() {
		It("should add the displacement to the branch's own PC", func() {
			setFlags(false, false, true, false)
			target, taken := branchUnit.Bcond(0x1000, 0x1002, insts.CondZ, 0x10)
			Expect(taken).To(BeTrue())
			Expect(target).To(Equal(uint32(0x1010)))
		})

		It("should wrap a negative displacement", func() {
			target, taken := branchUnit.Bcond(0x1000, 0x1002, insts.CondT, insts.SignExtendDisp9(0x1FF))
			Expect(taken).To(BeTrue())
			Expect(target).To(Equal(uint32(0x0FFF)))
		})

		It("should fall through when the condition fails", func() {
			setFlags(false, false, false, false)
			target, taken := branchUnit.Bcond(0x1000, 0x1002, insts.CondZ, 0x10)
			Expect(taken).To(BeFalse())
			Expect(target).To(Equal(uint32(0x1002)))
		})
	})

	Describe("CheckCondition", func() {
		It("should always take T and never take F", func() {
			for _, flags := range []bool{false, true} {
				setFlags(flags, flags, flags, flags)
				Expect(branchUnit.CheckCondition(insts.CondT)).To(BeTrue())
				Expect(branchUnit.CheckCondition(insts.CondF)).To(BeFalse())
			}
		})

		DescribeTable("single-flag conditions",
			func(cond insts.Cond, sign, overflow, zero, carry, expected bool) {
				setFlags(sign, overflow, zero, carry)
				Expect(branchUnit.CheckCondition(cond)).To(Equal(expected))
			},
			Entry("V set", insts.CondV, false, true, false, false, true),
			Entry("V clear", insts.CondV, false, false, false, false, false),
			Entry("NV set", insts.CondNV, false, true, false, false, false),
			Entry("C set", insts.CondC, false, false, false, true, true),
			Entry("NC set", insts.CondNC, false, false, false, true, false),
			Entry("Z set", insts.CondZ, false, false, true, false, true),
			Entry("NZ set", insts.CondNZ, false, false, true, false, false),
			Entry("N set", insts.CondN, true, false, false, false, true),
			Entry("P set", insts.CondP, true, false, false, false, false),
			Entry("NH carry", insts.CondNH, false, false, false, true, true),
			Entry("NH zero", insts.CondNH, false, false, true, false, true),
			Entry("NH neither", insts.CondNH, false, false, false, false, false),
			Entry("H neither", insts.CondH, false, false, false, false, true),
			Entry("H carry", insts.CondH, false, false, false, true, false),
		)

		DescribeTable("LT, LE, GE and GT over (sign, overflow, zero)",
			func(sign, overflow, zero, lt, le, ge, gt bool) {
				setFlags(sign, overflow, zero, false)
				Expect(branchUnit.CheckCondition(insts.CondLT)).To(Equal(lt))
				Expect(branchUnit.CheckCondition(insts.CondLE)).To(Equal(le))
				Expect(branchUnit.CheckCondition(insts.CondGE)).To(Equal(ge))
				Expect(branchUnit.CheckCondition(insts.CondGT)).To(Equal(gt))
			},
			Entry("s=0 ov=0 z=0", false, false, false, false, false, true, true),
			Entry("s=0 ov=0 z=1", false, false, true, false, true, true, false),
			Entry("s=0 ov=1 z=0", false, true, false, true, true, false, false),
			Entry("s=0 ov=1 z=1", false, true, true, true, false, false, false),
			Entry("s=1 ov=0 z=0", true, false, false, true, true, false, false),
			Entry("s=1 ov=0 z=1", true, false, true, true, false, false, false),
			Entry("s=1 ov=1 z=0", true, true, false, false, false, true, true),
			Entry("s=1 ov=1 z=1", true, true, true, false, true, true, false),
		)
	})
})
