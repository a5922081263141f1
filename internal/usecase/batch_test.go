package usecase

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func labels(values []domain.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Label())
	}
	return out
}

func TestRange(t *testing.T) {
	var got []domain.Value
	for v := range Range(arith.NewInt(3), arith.NewInt(5), domain.Plus, domain.Minus) {
		got = append(got, v)
	}
	assert.Equal(t, []string{"3P", "3M", "4P", "4M", "5P", "5M"}, labels(got))
	assert.Equal(t, "6", Count(arith.NewInt(3), arith.NewInt(5), 2).String())
	assert.Equal(t, "0", Count(arith.NewInt(5), arith.NewInt(3), 2).String())
}

func TestRangeEarlyStop(t *testing.T) {
	n := 0
	for range Range(arith.NewInt(0), arith.NewInt(100), domain.Plus) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestBatchSearchesEveryValue(t *testing.T) {
	em := &memEmitter{}
	led := newMemLedger()
	u := NewService(em, nil, led, zap.NewNop())
	u.Threshold = 4

	var seen []string
	err := u.Batch(context.Background(), Range(arith.NewInt(180), arith.NewInt(190), domain.Plus, domain.Minus),
		BatchOptions{Workers: 4}, func(r *Report) {
			seen = append(seen, r.Value.Label())
		})
	require.NoError(t, err)
	assert.Len(t, seen, 22)
	assert.Len(t, led.marked, 22)

	// 184P alone contributes 17 reports; names never collide across values.
	names := map[string]bool{}
	for _, f := range em.finds {
		require.False(t, names[f.Name()], "duplicate artifact %s", f.Name())
		names[f.Name()] = true
	}
	assert.GreaterOrEqual(t, len(names), 17)
}

func TestBatchResume(t *testing.T) {
	led := newMemLedger()
	led.done["1P"] = true
	led.done["2P"] = true
	u := NewService(&memEmitter{}, nil, led, zap.NewNop())

	var resumed, searched []string
	err := u.Batch(context.Background(), Range(arith.NewInt(1), arith.NewInt(4), domain.Plus),
		BatchOptions{Workers: 2, Resume: true}, func(r *Report) {
			if r.Resumed {
				resumed = append(resumed, r.Value.Label())
			} else {
				searched = append(searched, r.Value.Label())
			}
		})
	require.NoError(t, err)
	sort.Strings(resumed)
	sort.Strings(searched)
	assert.Equal(t, []string{"1P", "2P"}, resumed)
	assert.Equal(t, []string{"3P", "4P"}, searched)
}

func TestBatchStopsOnError(t *testing.T) {
	u := NewService(&memEmitter{fail: errDisk}, nil, nil, zap.NewNop())
	u.Threshold = 4
	err := u.Batch(context.Background(), Range(arith.NewInt(180), arith.NewInt(400), domain.Plus),
		BatchOptions{Workers: 3}, nil)
	assert.ErrorIs(t, err, errDisk)
}

func TestBatchResumeLedgerError(t *testing.T) {
	led := newMemLedger()
	led.failDone = errDisk
	u := NewService(&memEmitter{}, nil, led, zap.NewNop())
	err := u.Batch(context.Background(), Range(arith.NewInt(1), arith.NewInt(3), domain.Plus),
		BatchOptions{Workers: 1, Resume: true}, nil)
	assert.ErrorIs(t, err, errDisk)
}

func TestBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := NewService(&memEmitter{}, nil, nil, zap.NewNop())
	err := u.Batch(ctx, Range(arith.NewInt(1), arith.NewInt(50), domain.Plus), BatchOptions{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
