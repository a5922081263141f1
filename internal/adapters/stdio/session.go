// Package stdio drives the search from a line-oriented command stream.
//
// Each line is either a generator value ("5", "5+", "5-") or a quit command
// (any line starting with 'q'). After a value is searched, every artifact name
// is printed on its own line, followed by a single "_" line, and the output is
// flushed so a driving process can send the next value.
package stdio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/usecase"
)

var (
	ErrInvalidInput = errors.New("input is not a decimal integer")
	ErrTruncated    = errors.New("input stream truncated")
)

// Ready is written after every searched value.
const Ready = "_"

// ParseLine decodes one protocol line without its trailing newline.
func ParseLine(line string) (v domain.Value, quit bool, err error) {
	if strings.HasPrefix(line, "q") {
		return domain.Value{}, true, nil
	}
	line = strings.TrimSuffix(line, "\r")
	v.Sign = domain.Plus
	switch {
	case strings.HasSuffix(line, "+"):
		line = line[:len(line)-1]
	case strings.HasSuffix(line, "-"):
		v.Sign = domain.Minus
		line = line[:len(line)-1]
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	n, ok := arith.Parse(digits)
	if !ok {
		return domain.Value{}, false, fmt.Errorf("%w: %q", ErrInvalidInput, line)
	}
	v.Input = n
	return v, false, nil
}

type Searcher interface {
	Search(ctx context.Context, v domain.Value) (*usecase.Report, error)
}

type Session struct {
	search Searcher
	in     *bufio.Reader
	out    *bufio.Writer
	log    *zap.Logger
}

func NewSession(s Searcher, in io.Reader, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{search: s, in: bufio.NewReader(in), out: bufio.NewWriter(out), log: log}
}

// Run serves commands until quit (nil), a malformed line (ErrInvalidInput),
// a line without a newline (ErrTruncated), or a search failure.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrTruncated
			}
			return fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		v, quit, err := ParseLine(strings.TrimSuffix(line, "\n"))
		if quit {
			s.log.Debug("quit requested")
			return nil
		}
		if err != nil {
			return err
		}

		rep, err := s.search.Search(ctx, v)
		if err != nil {
			return fmt.Errorf("search %s: %w", v, err)
		}
		for _, f := range rep.Finds {
			fmt.Fprintln(s.out, f.Find.Name())
		}
		fmt.Fprintln(s.out, Ready)
		if err := s.out.Flush(); err != nil {
			return err
		}
	}
}
