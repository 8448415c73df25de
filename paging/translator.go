package paging

// AddressTranslator maps virtual addresses to page numbers
type AddressTranslator struct {
	pageSizeBytes uint32
	offsetBits    uint32
}

// NewAddressTranslator creates a translator for the given page size in bytes.
// The offset width is floor(log2(pageSizeBytes)): a page size that is not a
// power of two is treated as the next smaller power of two.
func NewAddressTranslator(pageSizeBytes uint32) AddressTranslator {
	var bits uint32
	for tmp := pageSizeBytes; tmp > 1; tmp >>= 1 {
		bits++
	}
	return AddressTranslator{
		pageSizeBytes: pageSizeBytes,
		offsetBits:    bits,
	}
}

// Translate returns the page number holding address
func (t AddressTranslator) Translate(address uint32) uint32 {
	return address >> t.offsetBits
}

// OffsetBits returns the number of low address bits used as page offset
func (t AddressTranslator) OffsetBits() uint32 {
	return t.offsetBits
}

// PageSizeBytes returns the configured page size
func (t AddressTranslator) PageSizeBytes() uint32 {
	return t.pageSizeBytes
}
