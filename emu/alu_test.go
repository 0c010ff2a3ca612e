package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/v810/emu"
)

var _ = Describe("ALU", func() {
	var (
		regFile *emu.RegFile
		alu     *emu.ALU
	)

	BeforeEach(func() {
		regFile = emu.NewRegFile()
		alu = emu.NewALU(regFile)
	})

	Describe("MOV", func() {
		It("should copy r1 into r2", func() {
			regFile.WriteReg(1, 0xCAFEBABE)
			alu.MOV(1, 2)
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0xCAFEBABE)))
		})

		It("should not write r0", func() {
			regFile.WriteReg(1, 7)
			alu.MOV(1, 0)
			Expect(regFile.ReadReg(0)).To(BeZero())
		})
	})

	Describe("MOVImm", func() {
		It("should sign-extend 0x1F to 0xFFFFFFFF", func() {
			alu.MOVImm(0x1F, 3)
			Expect(regFile.ReadReg(3)).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should zero-extend 0x0F", func() {
			alu.MOVImm(0x0F, 3)
			Expect(regFile.ReadReg(3)).To(Equal(uint32(0x0000000F)))
		})
	})

	Describe("SUB", func() {
		// SUB r1, r2 computes r2 = r2 - r1
		sub := func(lhs, rhs uint32) uint32 {
			regFile.WriteReg(2, lhs)
			regFile.WriteReg(1, rhs)
			alu.SUB(1, 2)
			return regFile.ReadReg(2)
		}

		It("should borrow when 0 - 1", func() {
			Expect(sub(0x00000000, 0x00000001)).To(Equal(uint32(0xFFFFFFFF)))
			Expect(regFile.PSW.Carry).To(BeTrue())
			Expect(regFile.PSW.Zero).To(BeFalse())
			Expect(regFile.PSW.Sign).To(BeTrue())
			Expect(regFile.PSW.Overflow).To(BeFalse())
		})

		It("should overflow when 0x80000000 - 1", func() {
			Expect(sub(0x80000000, 0x00000001)).To(Equal(uint32(0x7FFFFFFF)))
			Expect(regFile.PSW.Overflow).To(BeTrue())
			Expect(regFile.PSW.Carry).To(BeFalse())
			Expect(regFile.PSW.Sign).To(BeFalse())
		})

		It("should overflow when 0x7FFFFFFF - (-1)", func() {
			Expect(sub(0x7FFFFFFF, 0xFFFFFFFF)).To(Equal(uint32(0x80000000)))
			Expect(regFile.PSW.Overflow).To(BeTrue())
			Expect(regFile.PSW.Carry).To(BeTrue())
			Expect(regFile.PSW.Sign).To(BeTrue())
		})

		It("should set zero for equal operands", func() {
			Expect(sub(42, 42)).To(BeZero())
			Expect(regFile.PSW.Zero).To(BeTrue())
			Expect(regFile.PSW.Carry).To(BeFalse())
			Expect(regFile.PSW.Overflow).To(BeFalse())
		})

		It("should use r0 as zero", func() {
			regFile.WriteReg(2, 5)
			alu.SUB(0, 2)
			Expect(regFile.ReadReg(2)).To(Equal(uint32(5)))
			Expect(regFile.PSW.Carry).To(BeFalse())
		})

		It("should leave the interrupt flags alone", func() {
			regFile.PSW.InterruptDisable = true
			sub(1, 2)
			Expect(regFile.PSW.InterruptDisable).To(BeTrue())
			Expect(regFile.PSW.NMIPending).To(BeTrue())
		})
	})

	Describe("MOVEA", func() {
		It("should add a sign-extended immediate", func() {
			regFile.WriteReg(1, 0x00010000)
			alu.MOVEA(1, 2, 0xFFFF)
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0x0000FFFF)))
		})

		It("should not touch the flags", func() {
			before := regFile.PSW
			alu.MOVEA(0, 2, 0x8000)
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0xFFFF8000)))
			Expect(regFile.PSW).To(Equal(before))
		})
	})

	Describe("MOVHI", func() {
		It("should add the immediate to the upper half", func() {
			regFile.WriteReg(1, 0x00001234)
			alu.MOVHI(1, 2, 0x0700)
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0x07001234)))
		})

		It("should wrap", func() {
			regFile.WriteReg(1, 0xFFFF0000)
			alu.MOVHI(1, 2, 0x0001)
			Expect(regFile.ReadReg(2)).To(BeZero())
		})
	})
})
