package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/v810/emu"
	"github.com/sarchlab/v810/insts"
	"github.com/sarchlab/v810/timing/latency"
)

var _ emu.CycleTable = (*latency.Table)(nil)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	Describe("Default Timing Values", func() {
		It("should have correct register latency", func() {
			Expect(table.Config().RegisterLatency).To(Equal(uint32(1)))
		})

		It("should have correct interrupt flag latency", func() {
			Expect(table.Config().InterruptFlagLatency).To(Equal(uint32(12)))
		})

		It("should have correct load and store latency", func() {
			Expect(table.Config().LoadLatency).To(Equal(uint32(5)))
			Expect(table.Config().StoreLatency).To(Equal(uint32(4)))
		})
	})

	Describe("Instruction Latencies", func() {
		DescribeTable("should match the opcode table",
			func(first, second uint16, taken bool, expected uint32) {
				inst := decoder.DecodeInstruction(first, second)
				Expect(table.Cycles(inst, taken)).To(Equal(expected))
				Expect(table.Cycles(inst, taken)).To(Equal(inst.Op.Cycles(taken)))
			},
			Entry("MOV r1, r2", uint16(0x0041), uint16(0), false, uint32(1)),
			Entry("SUB r3, r4", uint16(0x0883), uint16(0), false, uint32(1)),
			Entry("JMP [r31]", uint16(0x181F), uint16(0), false, uint32(3)),
			Entry("MOV -1, r10", uint16(0x415F), uint16(0), false, uint32(1)),
			Entry("CLI", uint16(0x5800), uint16(0), false, uint32(12)),
			Entry("LDSR r1, PSW", uint16(0x7025), uint16(0), false, uint32(8)),
			Entry("SEI", uint16(0x7800), uint16(0), false, uint32(12)),
			Entry("BZ taken", uint16(0x85FF), uint16(0), true, uint32(3)),
			Entry("BZ not taken", uint16(0x85FF), uint16(0), false, uint32(1)),
			Entry("BR", uint16(0x8A10), uint16(0), true, uint32(3)),
			Entry("NOP", uint16(0x9A00), uint16(0), false, uint32(1)),
			Entry("MOVEA", uint16(0xA041), uint16(0x8000), false, uint32(1)),
			Entry("MOVHI", uint16(0xBC21), uint16(0x0001), false, uint32(1)),
			Entry("LD.W", uint16(0xCCC5), uint16(0xFFFC), false, uint32(5)),
			Entry("ST.H", uint16(0xD4C5), uint16(0x0010), false, uint32(4)),
			Entry("IN.B", uint16(0xE000), uint16(0), false, uint32(5)),
			Entry("OUT.W", uint16(0xFC00), uint16(0), false, uint32(4)),
		)
	})

	Describe("Instruction Type Detection", func() {
		It("should detect memory operations", func() {
			Expect(table.IsMemoryOp(decoder.DecodeInstruction(0xCCC5, 0))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.DecodeInstruction(0xF000, 0))).To(BeTrue())
			Expect(table.IsMemoryOp(decoder.DecodeInstruction(0x0041, 0))).To(BeFalse())
		})

		It("should detect load operations", func() {
			Expect(table.IsLoadOp(decoder.DecodeInstruction(0xE400, 0))).To(BeTrue())
			Expect(table.IsLoadOp(decoder.DecodeInstruction(0xD000, 0))).To(BeFalse())
		})

		It("should detect store operations", func() {
			Expect(table.IsStoreOp(decoder.DecodeInstruction(0xD000, 0))).To(BeTrue())
			Expect(table.IsStoreOp(decoder.DecodeInstruction(0xC000, 0))).To(BeFalse())
		})

		It("should detect branch operations", func() {
			Expect(table.IsBranchOp(decoder.DecodeInstruction(0x85FF, 0))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.DecodeInstruction(0x181F, 0))).To(BeTrue())
			Expect(table.IsBranchOp(decoder.DecodeInstruction(0x0883, 0))).To(BeFalse())
		})
	})

	Describe("Nil Instruction Handling", func() {
		It("should return 1 for nil instruction", func() {
			Expect(table.Cycles(nil, false)).To(Equal(uint32(1)))
		})

		It("should return false for nil instruction checks", func() {
			Expect(table.IsMemoryOp(nil)).To(BeFalse())
			Expect(table.IsBranchOp(nil)).To(BeFalse())
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := latency.DefaultTimingConfig()
			config.LoadLatency = 9
			config.InputLatency = 2
			config.BranchTakenLatency = 4
			table = latency.NewTableWithConfig(config)

			Expect(table.Cycles(decoder.DecodeInstruction(0xCCC5, 0), false)).To(Equal(uint32(9)))
			Expect(table.Cycles(decoder.DecodeInstruction(0xE000, 0), false)).To(Equal(uint32(2)))
			Expect(table.Cycles(decoder.DecodeInstruction(0x85FF, 0), true)).To(Equal(uint32(4)))
			Expect(table.Cycles(decoder.DecodeInstruction(0x0041, 0), false)).To(Equal(uint32(1)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			Expect(latency.DefaultTimingConfig().Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero register latency", func() {
			config := latency.DefaultTimingConfig()
			config.RegisterLatency = 0
			Expect(config.Validate()).To(MatchError(ContainSubstring("register_latency")))
		})

		It("should reject zero system register latency", func() {
			config := latency.DefaultTimingConfig()
			config.SystemRegisterLatency = 0
			Expect(config.Validate()).To(MatchError(ContainSubstring("system_register_latency")))
		})

		It("should reject zero output latency", func() {
			config := latency.DefaultTimingConfig()
			config.OutputLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a taken branch cheaper than a fall-through", func() {
			config := latency.DefaultTimingConfig()
			config.BranchTakenLatency = 1
			config.BranchNotTakenLatency = 2
			Expect(config.Validate()).To(MatchError(ContainSubstring("branch_taken_latency")))
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()
			clone.LoadLatency = 100

			Expect(original.LoadLatency).To(Equal(uint32(5)))
			Expect(clone.LoadLatency).To(Equal(uint32(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			path := filepath.Join(tempDir, "timing.json")
			config := latency.DefaultTimingConfig()
			config.StoreLatency = 7

			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(config))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"load_latency": 6}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.LoadLatency).To(Equal(uint32(6)))
			Expect(loaded.JumpLatency).To(Equal(uint32(3)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig(filepath.Join(tempDir, "missing.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "bad.json")
			Expect(os.WriteFile(path, []byte("{not json"), 0644)).To(Succeed())

			_, err := latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
