package paging

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
)

// TraceOptions controls how a trace file is opened
type TraceOptions struct {
	Compression CompressionType
	UseMmap     bool
}

// TraceOptionsFromConfig derives trace options from a validated config
func TraceOptionsFromConfig(cfg *Config) (TraceOptions, error) {
	compression, err := ParseCompression(cfg.TraceCompression)
	if err != nil {
		return TraceOptions{}, err
	}
	return TraceOptions{
		Compression: compression,
		UseMmap:     cfg.UseMmap,
	}, nil
}

// TraceFile is an open trace: a TraceReader plus the resources behind it
type TraceFile struct {
	*TraceReader
	path        string
	compression CompressionType
	mapped      bool
	closer      io.Closer
}

// OpenTrace opens a trace file for reading. With CompressionAuto the
// format is detected from the first bytes of the file.
func OpenTrace(path string, opts TraceOptions) (*TraceFile, error) {
	var (
		src    io.Reader
		closer io.Closer
		mapped bool
	)

	if opts.UseMmap {
		m, err := mmapFile(path)
		if err != nil {
			return nil, ErrTraceIO("OpenTrace", err)
		}
		src = bytes.NewReader(m.Bytes())
		closer = m
		mapped = true
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, ErrTraceIO("OpenTrace", err)
		}
		src = file
		closer = file
	}

	br := bufio.NewReader(src)

	compression := opts.Compression
	if compression == CompressionAuto {
		header, err := br.Peek(compressionPeekN)
		if err != nil && !errors.Is(err, io.EOF) {
			closer.Close()
			return nil, ErrTraceIO("OpenTrace", err)
		}
		compression = DetectCompression(header)
	}

	r, err := NewTraceDecompressor(br, compression)
	if err != nil {
		closer.Close()
		return nil, ErrTraceCompression("OpenTrace", err)
	}

	return &TraceFile{
		TraceReader: NewTraceReader(r),
		path:        path,
		compression: compression,
		mapped:      mapped,
		closer:      closer,
	}, nil
}

// Path returns the trace file path
func (tf *TraceFile) Path() string {
	return tf.path
}

// Compression returns the compression in effect after detection
func (tf *TraceFile) Compression() CompressionType {
	return tf.compression
}

// Mapped reports whether the file is read through a memory mapping
func (tf *TraceFile) Mapped() bool {
	return tf.mapped
}

// Close releases the file or mapping
func (tf *TraceFile) Close() error {
	if tf.closer == nil {
		return nil
	}
	err := tf.closer.Close()
	tf.closer = nil
	return err
}
