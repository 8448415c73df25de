//go:build windows

package paging

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mappedFile is a read-only memory mapping of a whole trace file
type mappedFile struct {
	data          []byte
	mappingHandle windows.Handle
}

// mmapFile maps path read-only. Empty files are not mapped.
func mmapFile(path string) (*mappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	// The view keeps the file referenced after the handle is closed
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := fileInfo.Size()
	if size == 0 {
		return &mappedFile{}, nil
	}

	maxSizeHigh := uint32(size >> 32)
	maxSizeLow := uint32(size & 0xFFFFFFFF)

	mappingHandle, err := windows.CreateFileMapping(
		windows.Handle(file.Fd()),
		nil,
		windows.PAGE_READONLY,
		maxSizeHigh,
		maxSizeLow,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file mapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(
		mappingHandle,
		windows.FILE_MAP_READ,
		0, // offset high
		0, // offset low
		uintptr(size),
	)
	if err != nil {
		windows.CloseHandle(mappingHandle)
		return nil, fmt.Errorf("failed to map view of file: %w", err)
	}

	// Intermediate uintptr conversion satisfies the unsafe pointer rules
	data := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), size)

	return &mappedFile{
		data:          data,
		mappingHandle: mappingHandle,
	}, nil
}

// Bytes returns the mapped contents
func (m *mappedFile) Bytes() []byte {
	return m.data
}

// Close unmaps the view and releases the mapping handle
func (m *mappedFile) Close() error {
	if m.data == nil {
		return nil
	}

	err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&m.data[0])))
	m.data = nil
	windows.CloseHandle(m.mappingHandle)
	m.mappingHandle = 0
	if err != nil {
		return fmt.Errorf("failed to unmap view: %w", err)
	}
	return nil
}
