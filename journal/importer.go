package journal

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Importer builds entries and records them in Store with a bounded
// number of workers.
type Importer struct {
	Store   Store
	Workers int
	Logger  *zap.Logger

	// DefaultAccount is used for entries without an account_id.
	DefaultAccount string

	Now func() time.Time
}

// Import records every entry and returns how many were written. The
// first failure cancels the remaining work and is returned.
func (im *Importer) Import(ctx context.Context, entries []Entry) (int, error) {
	logger := im.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("importer")
	now := im.Now
	if now == nil {
		now = time.Now
	}
	workers := im.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Resolve account currencies up front; the store connection is
	// shared with the workers.
	entries = append([]Entry(nil), entries...)
	currencies := map[string]string{}
	for i := range entries {
		if entries[i].AccountID == "" {
			entries[i].AccountID = im.DefaultAccount
		}
		acct := entries[i].AccountID
		if _, ok := currencies[acct]; ok || acct == "" {
			continue
		}
		a, err := im.Store.GetAccount(ctx, acct)
		if err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
		currencies[acct] = a.Currency
	}

	var recorded atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.AccountCurrency = currencies[e.AccountID]
			rec, err := Build(e, now())
			if err != nil {
				logger.Warn("entry rejected", zap.Int("row", i+1), zap.String("symbol", e.Symbol), zap.Error(err))
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
			if err := im.Store.RecordTrade(gctx, rec); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
			recorded.Add(1)
			return nil
		})
	}

	err := g.Wait()
	n := int(recorded.Load())
	logger.Info("import finished", zap.Int("recorded", n), zap.Int("total", len(entries)), zap.Error(err))
	return n, err
}
