package paging

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func readWorkload(t *testing.T, wc WorkloadConfig) []AccessRecord {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteWorkload(&buf, wc); err != nil {
		t.Fatal(err)
	}

	tr := NewTraceReader(&buf)
	var records []AccessRecord
	for {
		rec, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		records = append(records, rec)
	}
	if _, truncated := tr.Truncated(); truncated {
		t.Fatal("Generated workload should parse cleanly")
	}
	return records
}

func TestWorkloadSequential(t *testing.T) {
	wc := DefaultWorkloadConfig()
	wc.Pattern = PatternSequential
	wc.Accesses = 10
	wc.AddressSpace = 4 * 4096
	wc.WriteRatio = 0

	records := readWorkload(t, wc)
	if len(records) != 10 {
		t.Fatalf("Expected 10 records, got %d", len(records))
	}
	for i, rec := range records {
		expected := uint32(i%4) * 4096
		if rec.Address != expected {
			t.Errorf("Record %d: expected 0x%x, got 0x%x", i, expected, rec.Address)
		}
		if rec.Op != OpRead {
			t.Errorf("Record %d: expected read with zero write ratio", i)
		}
	}
}

func TestWorkloadUniformBounds(t *testing.T) {
	wc := DefaultWorkloadConfig()
	wc.Pattern = PatternUniform
	wc.Accesses = 2000
	wc.AddressSpace = 64 * 1024
	wc.WriteRatio = 1

	for _, rec := range readWorkload(t, wc) {
		if rec.Address >= wc.AddressSpace {
			t.Fatalf("Address 0x%x outside address space", rec.Address)
		}
		if rec.Op != OpWrite {
			t.Fatal("Expected only writes with write ratio 1")
		}
	}
}

func TestWorkloadLocality(t *testing.T) {
	wc := DefaultWorkloadConfig()
	wc.Accesses = 5000

	hotLimit := uint32(float64(wc.AddressSpace) * wc.HotFraction)
	hot := 0
	for _, rec := range readWorkload(t, wc) {
		if rec.Address < hotLimit {
			hot++
		}
	}

	// 90% targeted plus the cold draws that land in the hot region
	if hot < 4000 {
		t.Errorf("Expected most accesses in the hot region, got %d of 5000", hot)
	}
}

func TestWorkloadDeterministic(t *testing.T) {
	wc := DefaultWorkloadConfig()
	wc.Accesses = 500

	var a, b bytes.Buffer
	if err := WriteWorkload(&a, wc); err != nil {
		t.Fatal(err)
	}
	if err := WriteWorkload(&b, wc); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("Same seed should produce the same trace")
	}

	wc.Seed = 2
	var c bytes.Buffer
	if err := WriteWorkload(&c, wc); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Error("Different seeds should produce different traces")
	}
}

func TestWorkloadValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(wc *WorkloadConfig)
	}{
		{"unknown pattern", func(wc *WorkloadConfig) { wc.Pattern = "zipf" }},
		{"negative accesses", func(wc *WorkloadConfig) { wc.Accesses = -1 }},
		{"empty address space", func(wc *WorkloadConfig) { wc.AddressSpace = 0 }},
		{"write ratio above 1", func(wc *WorkloadConfig) { wc.WriteRatio = 1.5 }},
		{"zero hot fraction", func(wc *WorkloadConfig) { wc.HotFraction = 0 }},
		{"negative hot ratio", func(wc *WorkloadConfig) { wc.HotRatio = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc := DefaultWorkloadConfig()
			tt.modify(&wc)
			if err := WriteWorkload(io.Discard, wc); !IsErrorCode(err, ErrCodeInvalidConfig) {
				t.Errorf("Expected invalid config error, got %v", err)
			}
		})
	}

	wc := DefaultWorkloadConfig()
	wc.Pattern = PatternUniform
	wc.HotFraction = 0
	if err := wc.Validate(); err != nil {
		t.Errorf("Hot fraction only matters for locality: %v", err)
	}
}
