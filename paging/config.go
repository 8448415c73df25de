package paging

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Configuration limits
const (
	MinPageSizeKB       = 2
	MaxPageSizeKB       = 64
	MinPhysicalMemoryKB = 128
	MaxPhysicalMemoryKB = 16384
)

// Config holds simulator configuration
type Config struct {
	// Simulation
	Algorithm        string  `json:"algorithm"`          // Replacement policy (fifo, lru, random)
	PageSizeKB       uint32  `json:"page_size_kb"`       // Page size in KB
	PhysicalMemoryKB uint32  `json:"physical_memory_kb"` // Physical memory size in KB
	Seed             *uint64 `json:"seed,omitempty"`     // Random policy seed (nil: wall clock)

	// Trace input
	TraceFile        string `json:"trace_file"`        // Path to the access trace
	TraceCompression string `json:"trace_compression"` // auto, none, lz4, snappy
	UseMmap          bool   `json:"use_mmap"`          // Memory-map plain trace files

	// Diagnostics
	Debug         bool   `json:"debug"`          // Log every access
	EnableMetrics bool   `json:"enable_metrics"` // Collect hit/residency metrics
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Algorithm:        AlgorithmLRU,
		PageSizeKB:       4,
		PhysicalMemoryKB: 128,
		TraceCompression: "auto",
		UseMmap:          false,
		Debug:            false,
		EnableMetrics:    false,
		LogLevel:         "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	return DefaultConfig().ApplyEnv()
}

// ApplyEnv overrides fields from PAGESIM_* environment variables.
// Unparsable numeric values are ignored.
func (c *Config) ApplyEnv() *Config {
	if val := os.Getenv("PAGESIM_ALGORITHM"); val != "" {
		c.Algorithm = val
	}

	if val := os.Getenv("PAGESIM_PAGE_SIZE_KB"); val != "" {
		if size, err := strconv.ParseUint(val, 10, 32); err == nil {
			c.PageSizeKB = uint32(size)
		}
	}

	if val := os.Getenv("PAGESIM_PHYSICAL_MEMORY_KB"); val != "" {
		if size, err := strconv.ParseUint(val, 10, 32); err == nil {
			c.PhysicalMemoryKB = uint32(size)
		}
	}

	if val := os.Getenv("PAGESIM_SEED"); val != "" {
		if seed, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.Seed = &seed
		}
	}

	if val := os.Getenv("PAGESIM_TRACE_FILE"); val != "" {
		c.TraceFile = val
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		c.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_USE_MMAP"); val != "" {
		c.UseMmap = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_DEBUG"); val != "" {
		c.Debug = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		c.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	return c
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}

	if c.PageSizeKB < MinPageSizeKB || c.PageSizeKB > MaxPageSizeKB {
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("page size must be between %d and %d KB, got %d", MinPageSizeKB, MaxPageSizeKB, c.PageSizeKB))
	}

	if c.PhysicalMemoryKB < MinPhysicalMemoryKB || c.PhysicalMemoryKB > MaxPhysicalMemoryKB {
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("physical memory must be between %d and %d KB, got %d", MinPhysicalMemoryKB, MaxPhysicalMemoryKB, c.PhysicalMemoryKB))
	}

	if c.PhysicalMemoryKB%c.PageSizeKB != 0 {
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("physical memory (%d KB) must be a multiple of the page size (%d KB)", c.PhysicalMemoryKB, c.PageSizeKB))
	}

	if _, err := ParseCompression(c.TraceCompression); err != nil {
		return err
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidConfig("Validate",
			fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	return nil
}

// TotalFrames returns the number of physical frames
func (c *Config) TotalFrames() uint32 {
	if c.PageSizeKB == 0 {
		return 0
	}
	return c.PhysicalMemoryKB / c.PageSizeKB
}

// PageSizeBytes returns the page size in bytes
func (c *Config) PageSizeBytes() uint32 {
	return c.PageSizeKB * 1024
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	if c.Seed != nil {
		seed := *c.Seed
		clone.Seed = &seed
	}
	return &clone
}
