package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"blobwar/game"
	"blobwar/searcher"
	"blobwar/shmem"
)

// Supervisor runs an anytime worker process against a deadline and reads the
// best move it published before being killed.
type Supervisor struct {
	Command  []string // Worker binary and its leading arguments
	Deadline time.Duration
	Dir      string   // Where slots are created, shmem.DefaultDir if empty
	Env      []string // Extra worker environment
}

// Harvest asks the worker for a move on board. The move is false when the
// worker published nothing before the deadline.
func (s Supervisor) Harvest(ctx context.Context, board game.Board) (game.Move, bool, error) {
	if len(s.Command) == 0 {
		return game.Move{}, false, errors.New("no worker command")
	}
	dir := s.Dir
	if dir == "" {
		dir = shmem.DefaultDir
	}
	path := filepath.Join(dir, "blobwar-"+uuid.NewString())

	slot, err := shmem.Create(path)
	if err != nil {
		return game.Move{}, false, err
	}
	defer func() {
		if err := shmem.Remove(path); err != nil {
			log.Warn().Err(err).Str("slot", path).Msg("failed to remove slot")
		}
	}()
	defer slot.Close()

	args := append(slices.Clone(s.Command[1:]), "--slot", path, "--board", board.String())
	cmd := exec.Command(s.Command[0], args...)
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), s.Env...)
	if err := cmd.Start(); err != nil {
		return game.Move{}, false, fmt.Errorf("failed to start worker: %w", err)
	}

	var killed atomic.Bool
	exited := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(exited)
		err := cmd.Wait()
		if err != nil && !killed.Load() {
			return fmt.Errorf("worker exited before the deadline: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		timer := time.NewTimer(s.Deadline)
		defer timer.Stop()
		select {
		case <-exited:
			return nil
		case <-timer.C:
		case <-ctx.Done():
		}
		killed.Store(true)
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill worker: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return game.Move{}, false, err
	}

	move, found, err := shmem.NewAtomicMove[game.Move](slot, game.MoveCodec{}).Load()
	if err != nil {
		return game.Move{}, false, err
	}
	log.Debug().Str("slot", path).Bool("found", found).Msgf("harvested %v", move)
	return move, found, nil
}

// Anytime is a strategy backed by a Supervisor.
type Anytime struct {
	Supervisor Supervisor
}

func NewAnytime(supervisor Supervisor) *Anytime {
	return &Anytime{Supervisor: supervisor}
}

// ComputeNextMove falls back to the first legal move when the worker failed
// or found nothing in time. Failures are logged.
func (a *Anytime) ComputeNextMove(pos searcher.Position[game.Move]) (game.Move, bool) {
	board, ok := pos.(game.Board)
	if !ok {
		panic(fmt.Sprintf("anytime workers only play blobwar boards, got %T", pos))
	}
	move, found, err := a.Supervisor.Harvest(context.Background(), board)
	if err != nil {
		log.Error().Err(err).Msg("anytime worker failed")
	}
	if err == nil && found {
		return move, true
	}
	for first := range board.Movements() {
		log.Warn().Msgf("no anytime move on %v, playing %v", board, first)
		return first, true
	}
	return game.Move{}, false
}

func (a *Anytime) String() string {
	return fmt.Sprintf("Anytime (deadline: %v)", a.Supervisor.Deadline)
}
