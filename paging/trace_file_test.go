package paging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTraceFile(t *testing.T, dir, name string, data []byte, ct CompressionType) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := CompressTrace(&buf, bytes.NewReader(data), ct); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenTraceFormats(t *testing.T) {
	dir := t.TempDir()
	data := sampleTrace(t, 3000)

	files := map[CompressionType]string{
		CompressionNone:   writeTraceFile(t, dir, "trace.log", data, CompressionNone),
		CompressionLZ4:    writeTraceFile(t, dir, "trace.log.lz4", data, CompressionLZ4),
		CompressionSnappy: writeTraceFile(t, dir, "trace.log.sz", data, CompressionSnappy),
	}

	var baseline *Stats
	for ct, path := range files {
		for _, useMmap := range []bool{false, true} {
			tf, err := OpenTrace(path, TraceOptions{Compression: CompressionAuto, UseMmap: useMmap})
			if err != nil {
				t.Fatalf("%s (mmap=%v): open failed: %v", ct, useMmap, err)
			}

			if tf.Compression() != ct {
				t.Errorf("%s: detected %s", ct, tf.Compression())
			}
			if tf.Mapped() != useMmap {
				t.Errorf("%s: expected mapped=%v", ct, useMmap)
			}
			if tf.Path() != path {
				t.Errorf("Expected path %s, got %s", path, tf.Path())
			}

			e := newTestEngine(t, AlgorithmLRU, 4, 16)
			stats, err := e.Run(tf)
			if err != nil {
				t.Fatalf("%s (mmap=%v): run failed: %v", ct, useMmap, err)
			}
			if err := tf.Close(); err != nil {
				t.Errorf("Close failed: %v", err)
			}

			if stats.TotalAccesses != 3000 {
				t.Errorf("%s (mmap=%v): expected 3000 accesses, got %d", ct, useMmap, stats.TotalAccesses)
			}
			if baseline == nil {
				baseline = &stats
			} else if stats != *baseline {
				t.Errorf("%s (mmap=%v): stats %+v differ from %+v", ct, useMmap, stats, *baseline)
			}
		}
	}
}

func TestOpenTraceForcedCompression(t *testing.T) {
	dir := t.TempDir()
	path := writeTraceFile(t, dir, "plain.log", []byte("0x0000 R\n0x1000 W\n"), CompressionNone)

	tf, err := OpenTrace(path, TraceOptions{Compression: CompressionNone})
	if err != nil {
		t.Fatal(err)
	}
	defer tf.Close()

	rec, err := tf.Next()
	if err != nil || rec.Address != 0 || rec.Op != OpRead {
		t.Errorf("Unexpected first record %+v (err=%v)", rec, err)
	}

	// Forcing lz4 on a plain file fails on the first read
	bad, err := OpenTrace(path, TraceOptions{Compression: CompressionLZ4})
	if err != nil {
		t.Fatal(err)
	}
	defer bad.Close()

	if _, err := bad.Next(); !IsErrorCode(err, ErrCodeTraceIO) {
		t.Errorf("Expected trace I/O error, got %v", err)
	}
}

func TestOpenTraceMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.log")

	for _, useMmap := range []bool{false, true} {
		_, err := OpenTrace(missing, TraceOptions{Compression: CompressionAuto, UseMmap: useMmap})
		if !IsErrorCode(err, ErrCodeTraceIO) {
			t.Errorf("mmap=%v: expected trace I/O error, got %v", useMmap, err)
		}
	}
}

func TestOpenTraceEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	for _, useMmap := range []bool{false, true} {
		tf, err := OpenTrace(path, TraceOptions{Compression: CompressionAuto, UseMmap: useMmap})
		if err != nil {
			t.Fatalf("mmap=%v: open failed: %v", useMmap, err)
		}

		stats, err := newTestEngine(t, AlgorithmFIFO, 4, 4).Run(tf)
		if err != nil {
			t.Fatal(err)
		}
		if stats != (Stats{}) {
			t.Errorf("Expected zero stats, got %+v", stats)
		}
		if tf.Compression() != CompressionNone {
			t.Errorf("Empty file should be treated as plain, got %s", tf.Compression())
		}
		tf.Close()
	}
}

func TestTraceFileDoubleClose(t *testing.T) {
	path := writeTraceFile(t, t.TempDir(), "t.log", []byte("0 R\n"), CompressionNone)

	tf, err := OpenTrace(path, TraceOptions{UseMmap: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := tf.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tf.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
}

func TestTraceOptionsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceCompression = "snappy"
	cfg.UseMmap = true

	opts, err := TraceOptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Compression != CompressionSnappy || !opts.UseMmap {
		t.Errorf("Unexpected options %+v", opts)
	}

	cfg.TraceCompression = "gzip"
	if _, err := TraceOptionsFromConfig(cfg); err == nil {
		t.Error("Expected error for unknown compression")
	}
}
