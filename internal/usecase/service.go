package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/factor"
	"svw.info/magicsquares/internal/generator"
	"svw.info/magicsquares/internal/ports"
	"svw.info/magicsquares/internal/progression"
	"svw.info/magicsquares/internal/scanner"
)

type Service struct {
	Emitter   ports.Emitter
	Validator ports.Validator
	Ledger    ports.Ledger // optional
	Log       *zap.Logger
	// RunID tags ledger rows written by this process.
	RunID string
	// Threshold is the perfect-square count a grid must exceed.
	Threshold int

	gen *generator.Pythagorean
}

func NewService(e ports.Emitter, v ports.Validator, l ports.Ledger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Emitter:   e,
		Validator: v,
		Ledger:    l,
		Log:       log,
		RunID:     uuid.NewString(),
		Threshold: scanner.DefaultThreshold,
		gen:       generator.NewPythagorean(),
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Emitted pairs a find with the artifact it was written to.
type Emitted struct {
	Find     *domain.Find
	Artifact string
}

// Report is the outcome of searching one generator value.
type Report struct {
	Value  domain.Value
	Number *arith.Int
	Stats  ports.Stats
	Finds  []Emitted
	// Resumed is set when a batch skipped the value because the ledger had it.
	Resumed bool
}

// Search runs the full pipeline for one value: factor pairs, progressions,
// pair scan, then persistence of every report in scan order.
func (u *Service) Search(ctx context.Context, v domain.Value) (*Report, error) {
	if u.Emitter == nil {
		return nil, errNotConfigured
	}
	start := time.Now()
	number := v.Number()
	squared := new(arith.Int).Mul(number, number)

	pairs, err := factor.Pairs(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("factor %s: %w", number, err)
	}
	coll := u.progressions(pairs)
	u.debugDump(v, pairs, coll)

	rep := &Report{Value: v, Number: number}
	seq := 0
	st, err := scanner.New(u.Threshold).Scan(ctx, coll, func(e domain.Evaluation, class domain.Class) error {
		seq++
		f := &domain.Find{
			Value:         v,
			Number:        number,
			NumberSquared: squared,
			Class:         class,
			Evaluation:    e,
			Seq:           seq,
		}
		name, err := u.persist(ctx, f)
		if err != nil {
			return err
		}
		rep.Finds = append(rep.Finds, Emitted{Find: f, Artifact: name})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", v.Label(), err)
	}

	rep.Stats = ports.Stats{
		FactorPairs:  len(pairs),
		Progressions: coll.Len(),
		Pairs:        st.Pairs,
		Skipped:      st.Skipped,
		Finds:        len(rep.Finds),
		Duration:     time.Since(start),
	}
	if u.Ledger != nil {
		if err := u.Ledger.MarkDone(ctx, u.RunID, v, rep.Stats); err != nil {
			return nil, fmt.Errorf("mark %s done: %w", v.Label(), err)
		}
	}
	u.Log.Debug("value searched",
		zap.String("value", v.Label()),
		zap.String("number", number.String()),
		zap.Int("factor_pairs", rep.Stats.FactorPairs),
		zap.Int("progressions", rep.Stats.Progressions),
		zap.Int("pairs", rep.Stats.Pairs),
		zap.Int("finds", rep.Stats.Finds),
		zap.Duration("dur", rep.Stats.Duration),
	)
	return rep, nil
}

// progressions feeds every factor pair, largest f1 first and in both orders,
// into a fresh collection.
func (u *Service) progressions(pairs []domain.FactorPair) *progression.Collection {
	coll := progression.New()
	for i := len(pairs) - 1; i >= 0; i-- {
		p := pairs[i]
		u.gen.Generate(coll, p.F1, p.F2)
		if p.F1.Cmp(p.F2) != 0 {
			u.gen.Generate(coll, p.F2, p.F1)
		}
	}
	return coll
}

func (u *Service) persist(ctx context.Context, f *domain.Find) (string, error) {
	if u.Validator != nil {
		ok, conf, err := u.Validator.Validate(ctx, f.Evaluation.Grid)
		if err != nil || !ok {
			u.Log.Warn("grid is not magic",
				zap.String("find", f.Name()),
				zap.Any("lines", conf),
				zap.Error(err),
			)
		}
	}
	name, err := u.Emitter.Emit(ctx, f)
	if err != nil {
		return "", fmt.Errorf("emit %s: %w", f.Name(), err)
	}
	if u.Ledger != nil {
		if err := u.Ledger.Record(ctx, u.RunID, f, name); err != nil {
			return "", fmt.Errorf("record %s: %w", name, err)
		}
	}
	u.Log.Info("find",
		zap.String("value", f.Value.Label()),
		zap.String("class", f.Class.Tag()),
		zap.Int("squares", f.Evaluation.Count),
		zap.String("artifact", name),
	)
	return name, nil
}

func (u *Service) debugDump(v domain.Value, pairs []domain.FactorPair, coll *progression.Collection) {
	if !u.Log.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, p := range pairs {
		u.Log.Debug("factor pair", zap.String("value", v.Label()), zap.Stringer("f1", p.F1), zap.Stringer("f2", p.F2))
	}
	for _, p := range coll.All() {
		u.Log.Debug("progression", zap.String("value", v.Label()), zap.Stringer("ap", p))
	}
}

// Finds lists ledger entries, newest first.
func (u *Service) Finds(ctx context.Context, class domain.Class, limit int) ([]domain.FindMeta, error) {
	if u.Ledger == nil {
		return nil, errNotConfigured
	}
	return u.Ledger.List(ctx, class, limit)
}

// IsNotConfigured reports whether err comes from a missing dependency.
func IsNotConfigured(err error) bool { return errors.Is(err, errNotConfigured) }
