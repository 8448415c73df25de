package paging

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
)

// Workload patterns
const (
	PatternSequential = "sequential"
	PatternUniform    = "uniform"
	PatternLocality   = "locality"
)

// WorkloadConfig describes a synthetic trace
type WorkloadConfig struct {
	Pattern      string  // sequential, uniform, locality
	Accesses     int     // number of records to write
	AddressSpace uint32  // addresses are drawn from [0, AddressSpace)
	Stride       uint32  // address step for the sequential pattern
	WriteRatio   float64 // fraction of accesses that are writes
	HotFraction  float64 // locality: share of the address space that is hot
	HotRatio     float64 // locality: share of accesses that hit the hot region
	Seed         uint64
}

// DefaultWorkloadConfig returns a 1MB, 10k-access locality workload
func DefaultWorkloadConfig() WorkloadConfig {
	return WorkloadConfig{
		Pattern:      PatternLocality,
		Accesses:     10000,
		AddressSpace: 1 << 20,
		Stride:       4096,
		WriteRatio:   0.3,
		HotFraction:  0.1,
		HotRatio:     0.9,
		Seed:         1,
	}
}

// Validate validates the workload configuration
func (wc WorkloadConfig) Validate() error {
	switch wc.Pattern {
	case PatternSequential, PatternUniform, PatternLocality:
	default:
		return ErrInvalidConfig("Workload", fmt.Sprintf("invalid pattern: %s (must be sequential, uniform, or locality)", wc.Pattern))
	}
	if wc.Accesses < 0 {
		return ErrInvalidConfig("Workload", "access count cannot be negative")
	}
	if wc.AddressSpace == 0 {
		return ErrInvalidConfig("Workload", "address space must be greater than 0")
	}
	if wc.WriteRatio < 0 || wc.WriteRatio > 1 {
		return ErrInvalidConfig("Workload", "write ratio must be between 0 and 1")
	}
	if wc.Pattern == PatternLocality {
		if wc.HotFraction <= 0 || wc.HotFraction > 1 {
			return ErrInvalidConfig("Workload", "hot fraction must be in (0, 1]")
		}
		if wc.HotRatio < 0 || wc.HotRatio > 1 {
			return ErrInvalidConfig("Workload", "hot ratio must be between 0 and 1")
		}
	}
	return nil
}

// WriteWorkload writes a synthetic trace in the text trace format
func WriteWorkload(w io.Writer, wc WorkloadConfig) error {
	if err := wc.Validate(); err != nil {
		return err
	}

	rng := NewSeededRand(wc.Seed)
	next := addressGenerator(wc, rng)
	bw := bufio.NewWriter(w)

	for i := 0; i < wc.Accesses; i++ {
		op := 'R'
		if rng.Float64() < wc.WriteRatio {
			op = 'W'
		}
		if _, err := fmt.Fprintf(bw, "%08x %c\n", next(i), op); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func addressGenerator(wc WorkloadConfig, rng *rand.Rand) func(i int) uint32 {
	switch wc.Pattern {
	case PatternSequential:
		return func(i int) uint32 {
			return uint32((uint64(i) * uint64(wc.Stride)) % uint64(wc.AddressSpace))
		}
	case PatternUniform:
		return func(int) uint32 {
			return rng.Uint32N(wc.AddressSpace)
		}
	default:
		hot := uint32(float64(wc.AddressSpace) * wc.HotFraction)
		if hot == 0 {
			hot = 1
		}
		return func(int) uint32 {
			if rng.Float64() < wc.HotRatio {
				return rng.Uint32N(hot)
			}
			return rng.Uint32N(wc.AddressSpace)
		}
	}
}
