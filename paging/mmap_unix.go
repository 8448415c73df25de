//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package paging

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only memory mapping of a whole trace file
type mappedFile struct {
	data []byte
}

// mmapFile maps path read-only. Empty files are not mapped.
func mmapFile(path string) (*mappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	// The mapping stays valid after the descriptor is closed
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := fileInfo.Size()
	if size == 0 {
		return &mappedFile{}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("file %s too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to map file: %w", err)
	}

	return &mappedFile{data: data}, nil
}

// Bytes returns the mapped contents
func (m *mappedFile) Bytes() []byte {
	return m.data
}

// Close unmaps the file
func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if err != nil {
		return fmt.Errorf("failed to unmap file: %w", err)
	}
	return nil
}
