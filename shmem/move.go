package shmem

import (
	"errors"
	"fmt"
)

var (
	ErrUnencodable = errors.New("move cannot be encoded in a slot")
	ErrCorrupt     = errors.New("slot holds an invalid word")
)

// present tags the high word of a slot holding a move. A zero word is the
// "no move" sentinel.
const present = uint64(1) << 32

// Codec converts moves to and from the 32-bit payload of a slot.
type Codec[M comparable] interface {
	Encode(move M) (uint32, error)
	Decode(code uint32) (M, error)
}

// AtomicMove is a slot holding either a move or nothing.
type AtomicMove[M comparable] struct {
	slot  *Slot
	codec Codec[M]
}

func NewAtomicMove[M comparable](slot *Slot, codec Codec[M]) *AtomicMove[M] {
	return &AtomicMove[M]{slot: slot, codec: codec}
}

// Publish replaces the slot content with move, or with the sentinel when
// found is false.
func (a *AtomicMove[M]) Publish(move M, found bool) error {
	if !found {
		a.slot.Store(0)
		return nil
	}
	code, err := a.codec.Encode(move)
	if err != nil {
		return fmt.Errorf("%w: %v: %w", ErrUnencodable, move, err)
	}
	a.slot.Store(present | uint64(code))
	return nil
}

// Load returns the last published move, if any.
func (a *AtomicMove[M]) Load() (M, bool, error) {
	var none M
	word := a.slot.Load()
	switch word >> 32 {
	case 0:
		if word != 0 {
			return none, false, fmt.Errorf("%w: %#x", ErrCorrupt, word)
		}
		return none, false, nil
	case 1:
		move, err := a.codec.Decode(uint32(word))
		if err != nil {
			return none, false, fmt.Errorf("%w: %#x: %w", ErrCorrupt, word, err)
		}
		return move, true, nil
	default:
		return none, false, fmt.Errorf("%w: %#x", ErrCorrupt, word)
	}
}
