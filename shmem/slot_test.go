package shmem

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matryer/is"
)

func tempSlot(t *testing.T) string {
	return filepath.Join(t.TempDir(), "slot")
}

func TestPath(t *testing.T) {
	is := is.New(t)
	is.Equal(Path("blobwar-1"), "/dev/shm/blobwar-1")
	is.Equal(Path("/tmp/x/slot"), "/tmp/x/slot")
}

func TestSharedAcrossMappings(t *testing.T) {
	is := is.New(t)
	path := tempSlot(t)

	owner, err := Create(path)
	is.NoErr(err)
	defer owner.Close()
	is.Equal(owner.Load(), uint64(0)) // new slot is empty

	worker, err := Connect(path)
	is.NoErr(err)
	defer worker.Close()

	worker.Store(0x1_0000_0a0b)
	is.Equal(owner.Load(), uint64(0x1_0000_0a0b))

	owner.Store(7)
	is.Equal(worker.Load(), uint64(7))
}

func TestCreateResetsSlot(t *testing.T) {
	is := is.New(t)
	path := tempSlot(t)

	s, err := Create(path)
	is.NoErr(err)
	s.Store(42)
	is.NoErr(s.Close())

	s, err = Create(path)
	is.NoErr(err)
	defer s.Close()
	is.Equal(s.Load(), uint64(0))
}

func TestConnectFailure(t *testing.T) {
	is := is.New(t)

	_, err := Connect(filepath.Join(t.TempDir(), "missing"))
	is.True(errors.Is(err, ErrConnect))
}

func TestRemove(t *testing.T) {
	is := is.New(t)
	path := tempSlot(t)

	s, err := Create(path)
	is.NoErr(err)
	is.NoErr(s.Close())
	is.NoErr(s.Close()) // closing twice is harmless

	is.NoErr(Remove(path))
	is.NoErr(Remove(path)) // already gone
	_, err = Connect(path)
	is.True(errors.Is(err, ErrConnect))
}

func TestNoTornReads(t *testing.T) {
	is := is.New(t)
	path := tempSlot(t)

	writer, err := Create(path)
	is.NoErr(err)
	defer writer.Close()
	reader, err := Connect(path)
	is.NoErr(err)
	defer reader.Close()

	// Both halves of every written word are equal
	const rounds = 100000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(1); i <= rounds; i++ {
			writer.Store(i<<32 | i)
		}
	}()

	torn := 0
	for i := 0; i < rounds; i++ {
		word := reader.Load()
		if word>>32 != word&0xffffffff {
			torn++
		}
	}
	wg.Wait()
	is.Equal(torn, 0)
}

type squareCodec struct{}

func (squareCodec) Encode(move int) (uint32, error) {
	if move < 0 || move >= 64 {
		return 0, fmt.Errorf("square %d is off the board", move)
	}
	return uint32(move), nil
}

func (squareCodec) Decode(code uint32) (int, error) {
	if code >= 64 {
		return 0, fmt.Errorf("square %d is off the board", code)
	}
	return int(code), nil
}

func TestAtomicMove(t *testing.T) {
	is := is.New(t)
	path := tempSlot(t)

	s, err := Create(path)
	is.NoErr(err)
	defer s.Close()
	other, err := Connect(path)
	is.NoErr(err)
	defer other.Close()

	publisher := NewAtomicMove[int](s, squareCodec{})
	reader := NewAtomicMove[int](other, squareCodec{})

	_, found, err := reader.Load()
	is.NoErr(err)
	is.True(!found) // nothing published yet

	is.NoErr(publisher.Publish(0, true))
	move, found, err := reader.Load()
	is.NoErr(err)
	is.True(found) // square 0 is a move, not the sentinel
	is.Equal(move, 0)

	is.NoErr(publisher.Publish(17, true))
	move, _, err = reader.Load()
	is.NoErr(err)
	is.Equal(move, 17)

	is.NoErr(publisher.Publish(0, false))
	_, found, err = reader.Load()
	is.NoErr(err)
	is.True(!found)

	err = publisher.Publish(99, true)
	is.True(errors.Is(err, ErrUnencodable))
}

func TestAtomicMoveCorrupt(t *testing.T) {
	is := is.New(t)

	s, err := Create(tempSlot(t))
	is.NoErr(err)
	defer s.Close()
	reader := NewAtomicMove[int](s, squareCodec{})

	for _, word := range []uint64{5, 2 << 32, present | 99} {
		s.Store(word)
		_, _, err := reader.Load()
		is.True(errors.Is(err, ErrCorrupt))
	}
}
