package dapp

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/Mohsinsiddi/counterdapp/internal/contract"
	"golang.org/x/sync/errgroup"
)

// historyFetchLimit bounds concurrent getMessage calls.
const historyFetchLimit = 8

// Reader is the read side of the counter binding.
type Reader interface {
	Count(ctx context.Context) (*big.Int, error)
	HistoryCount(ctx context.Context) (uint64, error)
	Message(ctx context.Context, i uint64) (contract.Message, error)
}

// Snapshot is one consistent-enough read of the contract.
type Snapshot struct {
	Count   *big.Int
	History []Entry // newest first
}

// Loader reads the counter and its full history.
type Loader struct {
	reader Reader
	limit  int
	loc    *time.Location
}

// NewLoader creates a loader over r. Timestamps are rendered in the local zone.
func NewLoader(r Reader) *Loader {
	return &Loader{reader: r, limit: historyFetchLimit, loc: time.Local}
}

// LoadAll reads the count, the history length, and every entry. Entries are
// fetched concurrently and returned newest first. Any failure discards the
// whole result.
func (l *Loader) LoadAll(ctx context.Context) (Snapshot, error) {
	var (
		count *big.Int
		n     uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = l.reader.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		n, err = l.reader.HistoryCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	history, err := l.loadHistory(ctx, n)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Snapshot{Count: count, History: history}, nil
}

// LoadHistory reads only the message history, newest first.
func (l *Loader) LoadHistory(ctx context.Context) ([]Entry, error) {
	n, err := l.reader.HistoryCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	history, err := l.loadHistory(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return history, nil
}

func (l *Loader) loadHistory(ctx context.Context, n uint64) ([]Entry, error) {
	entries := make([]Entry, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)
	for i := uint64(0); i < n; i++ {
		g.Go(func() error {
			m, err := l.reader.Message(gctx, i)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			entries[i] = Entry{
				Message:   m.Text,
				Sender:    m.Sender,
				Timestamp: time.Unix(m.Timestamp.Int64(), 0).In(l.loc),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Reverse(entries)
	return entries, nil
}
