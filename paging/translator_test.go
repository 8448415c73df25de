package paging

import "testing"

func TestOffsetBits(t *testing.T) {
	tests := []struct {
		name     string
		pageSize uint32
		expected uint32
	}{
		{"2KB", 2 * 1024, 11},
		{"4KB", 4 * 1024, 12},
		{"8KB", 8 * 1024, 13},
		{"64KB", 64 * 1024, 16},
		// Not a power of two: floors to 2KB
		{"3KB", 3 * 1024, 11},
		// Floors to 32KB
		{"63KB", 63 * 1024, 15},
		{"one byte", 1, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewAddressTranslator(tt.pageSize)
			if tr.OffsetBits() != tt.expected {
				t.Errorf("Expected %d offset bits, got %d", tt.expected, tr.OffsetBits())
			}
			if tr.PageSizeBytes() != tt.pageSize {
				t.Errorf("Expected page size %d, got %d", tt.pageSize, tr.PageSizeBytes())
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	tr := NewAddressTranslator(4 * 1024)

	tests := []struct {
		address uint32
		page    uint32
	}{
		{0x00000000, 0},
		{0x00000fff, 0},
		{0x00001000, 1},
		{0x00002000, 2},
		{0x0041f7a0, 0x41f},
		{0xffffffff, 0xfffff},
	}

	for _, tt := range tests {
		if got := tr.Translate(tt.address); got != tt.page {
			t.Errorf("Translate(0x%x): expected page %d, got %d", tt.address, tt.page, got)
		}
	}
}

func TestTranslateNonPowerOfTwo(t *testing.T) {
	// 3KB pages use an 11-bit offset, so boundaries fall every 2KB
	tr := NewAddressTranslator(3 * 1024)

	if got := tr.Translate(0x7ff); got != 0 {
		t.Errorf("Expected page 0, got %d", got)
	}
	if got := tr.Translate(0x800); got != 1 {
		t.Errorf("Expected page 1 at 2KB boundary, got %d", got)
	}
	if got := tr.Translate(0xc00); got != 1 {
		t.Errorf("Expected page 1 at 3KB, got %d", got)
	}
}
