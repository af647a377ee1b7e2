// Package config holds owl's on-disk settings: things a user would
// otherwise have to repeat as flags on every invocation (memory size,
// syscall selectors, trace verbosity). It follows the same
// default-then-override-from-TOML shape regardless of which command
// reads it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is owl's full on-disk configuration.
type Config struct {
	// Memory settings.
	Memory struct {
		SizeBytes uint32 `toml:"size_bytes"`
	} `toml:"memory"`

	// Execution settings.
	Execution struct {
		VerboseTrace bool `toml:"verbose_trace"`
		RV32I        bool `toml:"rv32i"`
	} `toml:"execution"`

	// Syscalls settings: selector overrides, so an embedder can remap
	// the two defined selectors without recompiling.
	Syscalls struct {
		Exit     uint32 `toml:"exit"`
		PrintFib uint32 `toml:"print_fib"`
	} `toml:"syscalls"`
}

// DefaultConfig returns owl's built-in defaults: 4 KiB of memory,
// tracing off, direct Owl execution, and the syscall selectors named
// in the ABI.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.SizeBytes = 4096
	cfg.Execution.VerboseTrace = false
	cfg.Execution.RV32I = false
	cfg.Syscalls.Exit = 0
	cfg.Syscalls.PrintFib = 1
	return cfg
}

// LoadFrom reads configuration from path, layered on top of
// DefaultConfig. A missing file is not an error: it just means the
// defaults stand.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes cfg to path as TOML, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("config: failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	return nil
}
