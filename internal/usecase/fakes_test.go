package usecase

import (
	"context"
	"errors"
	"sync"

	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/ports"
)

type memEmitter struct {
	mu    sync.Mutex
	finds []*domain.Find
	fail  error
}

func (m *memEmitter) Emit(ctx context.Context, f *domain.Find) (string, error) {
	if m.fail != nil {
		return "", m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds = append(m.finds, f)
	return f.Name(), nil
}

type memLedger struct {
	mu       sync.Mutex
	records  []string
	done     map[string]bool
	marked   []string
	failDone error
}

func newMemLedger() *memLedger { return &memLedger{done: map[string]bool{}} }

func (l *memLedger) Record(ctx context.Context, runID string, f *domain.Find, artifact string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, artifact)
	return nil
}

func (l *memLedger) List(ctx context.Context, class domain.Class, limit int) ([]domain.FindMeta, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.FindMeta
	for _, r := range l.records {
		out = append(out, domain.FindMeta{Artifact: r})
	}
	return out, nil
}

func (l *memLedger) MarkDone(ctx context.Context, runID string, v domain.Value, st ports.Stats) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done[v.Label()] = true
	l.marked = append(l.marked, v.Label())
	return nil
}

func (l *memLedger) Done(ctx context.Context, v domain.Value) (bool, error) {
	if l.failDone != nil {
		return false, l.failDone
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done[v.Label()], nil
}

var errDisk = errors.New("disk full")
