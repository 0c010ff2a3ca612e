package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds cycle counts for different instruction classes.
// Values follow the V810 user's manual execution-clock table.
type TimingConfig struct {
	// RegisterLatency covers MOV, SUB, MOVEA and MOVHI. Default: 1 cycle.
	RegisterLatency uint32 `json:"register_latency"`

	// JumpLatency is the cost of JMP. Default: 3 cycles.
	JumpLatency uint32 `json:"jump_latency"`

	// InterruptFlagLatency is the cost of CLI and SEI. Default: 12 cycles.
	InterruptFlagLatency uint32 `json:"interrupt_flag_latency"`

	// SystemRegisterLatency is the cost of LDSR. Default: 8 cycles.
	SystemRegisterLatency uint32 `json:"system_register_latency"`

	// BranchTakenLatency is the cost of a taken Bcond, including BR.
	// Default: 3 cycles.
	BranchTakenLatency uint32 `json:"branch_taken_latency"`

	// BranchNotTakenLatency is the cost of a Bcond that falls through,
	// including NOP. Default: 1 cycle.
	BranchNotTakenLatency uint32 `json:"branch_not_taken_latency"`

	// LoadLatency is the cost of LD.B, LD.H and LD.W. Default: 5 cycles.
	LoadLatency uint32 `json:"load_latency"`

	// StoreLatency is the cost of ST.B, ST.H and ST.W. Default: 4 cycles.
	StoreLatency uint32 `json:"store_latency"`

	// InputLatency is the cost of IN.B, IN.H and IN.W. Default: 5 cycles.
	InputLatency uint32 `json:"input_latency"`

	// OutputLatency is the cost of OUT.B, OUT.H and OUT.W. Default: 4 cycles.
	OutputLatency uint32 `json:"output_latency"`
}

// DefaultTimingConfig returns a TimingConfig with V810 default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		RegisterLatency:       1,
		JumpLatency:           3,
		InterruptFlagLatency:  12,
		SystemRegisterLatency: 8,
		BranchTakenLatency:    3,
		BranchNotTakenLatency: 1,
		LoadLatency:           5,
		StoreLatency:          4,
		InputLatency:          5,
		OutputLatency:         4,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from
// the file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	if c.RegisterLatency == 0 {
		return fmt.Errorf("register_latency must be > 0")
	}
	if c.JumpLatency == 0 {
		return fmt.Errorf("jump_latency must be > 0")
	}
	if c.InterruptFlagLatency == 0 {
		return fmt.Errorf("interrupt_flag_latency must be > 0")
	}
	if c.SystemRegisterLatency == 0 {
		return fmt.Errorf("system_register_latency must be > 0")
	}
	if c.BranchNotTakenLatency == 0 {
		return fmt.Errorf("branch_not_taken_latency must be > 0")
	}
	if c.BranchTakenLatency < c.BranchNotTakenLatency {
		return fmt.Errorf("branch_taken_latency must be >= branch_not_taken_latency")
	}
	if c.LoadLatency == 0 || c.InputLatency == 0 {
		return fmt.Errorf("load_latency and input_latency must be > 0")
	}
	if c.StoreLatency == 0 || c.OutputLatency == 0 {
		return fmt.Errorf("store_latency and output_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
