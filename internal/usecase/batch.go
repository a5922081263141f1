package usecase

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
)

// BatchOptions tunes Batch.
type BatchOptions struct {
	// Workers caps concurrent searches; <= 0 means runtime.NumCPU().
	Workers int
	// Resume skips values the ledger already marks done.
	Resume bool
}

// Batch searches values concurrently. Each value gets its own collection and its
// artifacts carry the value label, so workers share nothing but the emitter and
// ledger. onReport calls are serialized. The first error cancels the rest.
func (u *Service) Batch(ctx context.Context, values iter.Seq[domain.Value], opts BatchOptions, onReport func(*Report)) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var mu sync.Mutex
	report := func(r *Report) {
		if onReport == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onReport(r)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for v := range values {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if opts.Resume && u.Ledger != nil {
				done, err := u.Ledger.Done(gctx, v)
				if err != nil {
					return fmt.Errorf("resume check %s: %w", v.Label(), err)
				}
				if done {
					u.Log.Debug("value already searched", zap.String("value", v.Label()))
					report(&Report{Value: v, Number: v.Number(), Resumed: true})
					return nil
				}
			}
			rep, err := u.Search(gctx, v)
			if err != nil {
				return err
			}
			report(rep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Range yields the values from..to inclusive, each once per sign in order.
func Range(from, to *arith.Int, signs ...domain.Sign) iter.Seq[domain.Value] {
	return func(yield func(domain.Value) bool) {
		one := arith.NewInt(1)
		for k := new(arith.Int).Set(from); k.Cmp(to) <= 0; k.Add(k, one) {
			for _, s := range signs {
				if !yield(domain.Value{Input: new(arith.Int).Set(k), Sign: s}) {
					return
				}
			}
		}
	}
}

// Count returns how many values Range(from, to, signs...) yields.
func Count(from, to *arith.Int, signs int) *arith.Int {
	n := new(arith.Int).Sub(to, from)
	if n.Sign() < 0 {
		return arith.NewInt(0)
	}
	n.Add(n, arith.NewInt(1))
	return n.Mul(n, arith.NewInt(int64(signs)))
}
