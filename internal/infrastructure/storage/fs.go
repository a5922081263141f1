package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"svw.info/magicsquares/internal/domain"
)

// FS writes one .result file per find into dir.
type FS struct{ dir string }

func NewFS(dir string) *FS {
	if dir == "" {
		dir = "."
	}
	return &FS{dir: dir}
}

func (s *FS) Dir() string { return s.dir }

func (s *FS) pathFor(f *domain.Find) string {
	if s.dir == "." {
		return f.Name()
	}
	return filepath.Join(s.dir, f.Name())
}

// Emit writes the artifact and returns its path. An existing file with the
// same name is replaced.
func (s *FS) Emit(ctx context.Context, f *domain.Find) (string, error) {
	if f == nil || f.Number == nil || f.NumberSquared == nil {
		return "", errors.New("invalid find: missing number")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := s.pathFor(f)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(out)
	writeBody(w, f)
	if err := w.Flush(); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return target, nil
}

func writeBody(w *bufio.Writer, f *domain.Find) {
	fmt.Fprintln(w, f.Number)
	fmt.Fprintln(w, f.NumberSquared)
	fmt.Fprintln(w, f.Evaluation.SquareMask())
	fmt.Fprintln(w, f.Evaluation.Grid)
}
