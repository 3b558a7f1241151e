// Package config holds the run configuration of the simulated core.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/rv32core/timing/cache"
)

// SimConfig holds the parameters of one simulation run.
type SimConfig struct {
	// FreqMHz is the core clock. Default: 12 MHz.
	FreqMHz uint64 `json:"freq_mhz"`

	// MaxCycles bounds the run. Zero means run until the program is drained.
	MaxCycles uint64 `json:"max_cycles"`

	// ICacheEnabled puts an instruction cache between the feeder and the
	// program image. Without it every fetch completes in the cycle it is
	// issued.
	ICacheEnabled bool `json:"icache_enabled"`

	// ICache is the instruction cache geometry and latency.
	ICache cache.Config `json:"icache"`

	// Trace reports every clock edge.
	Trace bool `json:"trace"`
}

// DefaultSimConfig returns a SimConfig with the default values.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		FreqMHz:       12,
		MaxCycles:     0,
		ICacheEnabled: false,
		ICache:        cache.DefaultICacheConfig(),
		Trace:         false,
	}
}

// LoadConfig loads a SimConfig from a JSON file. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sim config file: %w", err)
	}

	config := DefaultSimConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse sim config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a SimConfig to a JSON file.
func (c *SimConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sim config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sim config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a run.
func (c *SimConfig) Validate() error {
	if c.FreqMHz == 0 {
		return fmt.Errorf("freq_mhz must be > 0")
	}
	if c.ICacheEnabled {
		if err := c.ICache.Validate(); err != nil {
			return fmt.Errorf("icache: %w", err)
		}
	}
	return nil
}

// Clone returns a deep copy of the SimConfig.
func (c *SimConfig) Clone() *SimConfig {
	return &SimConfig{
		FreqMHz:       c.FreqMHz,
		MaxCycles:     c.MaxCycles,
		ICacheEnabled: c.ICacheEnabled,
		ICache:        c.ICache,
		Trace:         c.Trace,
	}
}
