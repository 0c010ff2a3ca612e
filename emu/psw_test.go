package emu_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/v810/emu"
)

var _ = Describe("PSW", func() {
	DescribeTable("should place each flag at its bit",
		func(psw emu.PSW, expected uint32) {
			Expect(psw.Pack()).To(Equal(expected))
			Expect(emu.UnpackPSW(expected)).To(Equal(psw))
		},
		Entry("zero", emu.PSW{Zero: true}, uint32(1<<0)),
		Entry("sign", emu.PSW{Sign: true}, uint32(1<<1)),
		Entry("overflow", emu.PSW{Overflow: true}, uint32(1<<2)),
		Entry("carry", emu.PSW{Carry: true}, uint32(1<<3)),
		Entry("fp precision degradation", emu.PSW{FPPrecisionDegradation: true}, uint32(1<<4)),
		Entry("fp underflow", emu.PSW{FPUnderflow: true}, uint32(1<<5)),
		Entry("fp overflow", emu.PSW{FPOverflow: true}, uint32(1<<6)),
		Entry("fp zero division", emu.PSW{FPZeroDivision: true}, uint32(1<<7)),
		Entry("fp invalid operation", emu.PSW{FPInvalidOperation: true}, uint32(1<<8)),
		Entry("fp reserved operand", emu.PSW{FPReservedOperand: true}, uint32(1<<9)),
		Entry("interrupt disable", emu.PSW{InterruptDisable: true}, uint32(1<<12)),
		Entry("address trap enable", emu.PSW{AddressTrapEnable: true}, uint32(1<<13)),
		Entry("exception pending", emu.PSW{ExceptionPending: true}, uint32(1<<14)),
		Entry("nmi pending", emu.PSW{NMIPending: true}, uint32(1<<15)),
		Entry("mask level", emu.PSW{InterruptMaskLevel: 0xA}, uint32(0xA<<16)),
	)

	It("should round-trip every value in the masked domain", func() {
		checked := 0
		for v := uint32(0); v < 1<<20; v++ {
			if v&^emu.PSWMask != 0 {
				continue
			}
			if got := emu.UnpackPSW(v).Pack(); got != v {
				Fail(fmt.Sprintf("psw 0x%05x packed back as 0x%05x", v, got))
			}
			checked++
		}

		// 14 flag bits and a 4-bit mask level
		Expect(checked).To(Equal(1 << 18))
	})

	It("should drop bits 10-11 and 20-31", func() {
		Expect(emu.UnpackPSW(0xFFFFFFFF).Pack()).To(Equal(emu.PSWMask))
		Expect(emu.UnpackPSW(0x00000C00).Pack()).To(BeZero())
		Expect(emu.UnpackPSW(0xFFF00000).Pack()).To(BeZero())
	})

	It("should keep only the low four bits of the mask level", func() {
		psw := emu.PSW{InterruptMaskLevel: 0x1F}
		Expect(psw.Pack()).To(Equal(uint32(0xF << 16)))
	})

	It("should render a labelled bit pattern", func() {
		psw := emu.PSW{NMIPending: true, Carry: true, Zero: true, InterruptMaskLevel: 12}
		Expect(psw.String()).To(Equal("NPepaeid-CYovsZ I=C"))
	})
})
