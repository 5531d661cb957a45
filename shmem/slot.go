package shmem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultDir is where named regions live when a bare name is given.
const DefaultDir = "/dev/shm"

const slotSize = 8

var ErrConnect = errors.New("cannot connect to shared memory slot")

// Slot is one 64-bit word in a memory region shared between processes. Every
// access is a single atomic operation, so readers never see a torn value.
type Slot struct {
	data []byte
	word *uint64
}

// Path resolves a region name. Names without a directory are placed in
// DefaultDir.
func Path(name string) string {
	if filepath.Base(name) == name {
		return filepath.Join(DefaultDir, name)
	}
	return name
}

// Create makes (or truncates) the region at path and maps it. The slot
// starts out empty.
func Create(path string) (*Slot, error) {
	f, err := os.OpenFile(Path(path), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared memory slot: %w", err)
	}
	defer f.Close()

	if err := f.Truncate(slotSize); err != nil {
		return nil, fmt.Errorf("failed to size shared memory slot: %w", err)
	}
	s, err := mapSlot(f)
	if err != nil {
		return nil, err
	}
	s.Store(0)
	return s, nil
}

// Connect maps a region previously made by Create.
func Connect(path string) (*Slot, error) {
	f, err := os.OpenFile(Path(path), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConnect, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConnect, path, err)
	}
	if info.Size() < slotSize {
		return nil, fmt.Errorf("%w %s: region holds %d bytes", ErrConnect, path, info.Size())
	}
	s, err := mapSlot(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConnect, path, err)
	}
	return s, nil
}

func mapSlot(f *os.File) (*Slot, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, slotSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to map shared memory slot: %w", err)
	}
	// Mappings are page aligned, which satisfies 64-bit atomics
	return &Slot{data: data, word: (*uint64)(unsafe.Pointer(&data[0]))}, nil
}

func (s *Slot) Store(value uint64) {
	atomic.StoreUint64(s.word, value)
}

func (s *Slot) Load() uint64 {
	return atomic.LoadUint64(s.word)
}

// Close unmaps the slot. The region itself survives until Remove.
func (s *Slot) Close() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data, s.word = nil, nil
	return err
}

// Remove deletes the region at path. A missing region is not an error.
func Remove(path string) error {
	if err := os.Remove(Path(path)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove shared memory slot: %w", err)
	}
	return nil
}
