package paging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression applied to a trace file
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0
	CompressionLZ4    CompressionType = 1
	CompressionSnappy CompressionType = 2
	CompressionAuto   CompressionType = 3 // detect from the stream header
)

// Stream headers used for detection:
// LZ4 frame magic 0x184D2204 (little endian), and the snappy framing
// format stream identifier chunk.
var (
	lz4FrameMagic    = []byte{0x04, 0x22, 0x4d, 0x18}
	snappyStreamID   = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
	compressionPeekN = len(snappyStreamID)
)

// ParseCompression maps a config name to a CompressionType
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, ErrInvalidConfig("ParseCompression",
			fmt.Sprintf("invalid trace compression: %s (must be auto, none, lz4, or snappy)", name))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	case CompressionAuto:
		return "auto"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// DetectCompression inspects the first bytes of a trace stream
func DetectCompression(header []byte) CompressionType {
	switch {
	case bytes.HasPrefix(header, lz4FrameMagic):
		return CompressionLZ4
	case bytes.HasPrefix(header, snappyStreamID):
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// NewTraceDecompressor wraps r so that reads return plain trace text
func NewTraceDecompressor(r io.Reader, compressionType CompressionType) (io.Reader, error) {
	switch compressionType {
	case CompressionNone:
		return r, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	case CompressionSnappy:
		return snappy.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewTraceCompressor returns a writer that compresses into w.
// Close flushes the compressed stream but does not close w.
func NewTraceCompressor(w io.Writer, compressionType CompressionType) (io.WriteCloser, error) {
	switch compressionType {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
			return nil, fmt.Errorf("LZ4 writer setup failed: %w", err)
		}
		return zw, nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}
}

// CompressTrace copies src into dst with the given compression and
// returns the number of uncompressed bytes written
func CompressTrace(dst io.Writer, src io.Reader, compressionType CompressionType) (int64, error) {
	zw, err := NewTraceCompressor(dst, compressionType)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(zw, src)
	if err != nil {
		zw.Close()
		return n, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	if err := zw.Close(); err != nil {
		return n, fmt.Errorf("%s compression flush failed: %w", compressionType, err)
	}
	return n, nil
}
