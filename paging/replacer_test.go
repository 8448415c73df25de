package paging

import "testing"

func TestNewReplacer(t *testing.T) {
	rng := NewSeededRand(1)

	tests := []struct {
		algorithm string
		expected  string
	}{
		{AlgorithmFIFO, "fifo"},
		{AlgorithmLRU, "lru"},
		{AlgorithmRandom, "random"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			r, err := NewReplacer(tt.algorithm, 4, rng)
			if err != nil {
				t.Fatalf("Failed to create replacer: %v", err)
			}
			if r.Name() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, r.Name())
			}
		})
	}
}

func TestNewReplacerInvalid(t *testing.T) {
	for _, name := range []string{"", "LRU", "Fifo", "clock", "arc"} {
		if _, err := NewReplacer(name, 4, NewSeededRand(1)); !IsErrorCode(err, ErrCodeInvalidAlgorithm) {
			t.Errorf("%q: expected invalid algorithm error, got %v", name, err)
		}
	}

	if _, err := NewReplacer(AlgorithmRandom, 4, nil); !IsErrorCode(err, ErrCodeInvalidConfig) {
		t.Errorf("Random without a source should fail, got %v", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, name := range Algorithms {
		got, err := ParseAlgorithm(name)
		if err != nil || got != name {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", name, got, err)
		}
	}

	if _, err := ParseAlgorithm("RANDOM"); err == nil {
		t.Error("Algorithm names are case-sensitive")
	}
}
