package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/usecase"
)

type batchFlags struct {
	from, to string
	sign     string
	workers  int
	resume   bool
	progress bool
}

func newBatchCmd(a *app) *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Search a range of generator values concurrently",
		Long: `Searches every k in [--from, --to] for the numbers 6k+1 and/or 6k-1.
Each value is searched by its own worker; artifact names carry the value so
workers never collide. With --resume, values the ledger already marks done are
skipped (requires --ledger).

Example:
  squares-search batch --from 1 --to 100000 --sign both --ledger --resume`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, f, cmd.Flags().Changed("workers"))
		},
	}
	cmd.Flags().StringVar(&f.from, "from", "1", "first generator value")
	cmd.Flags().StringVar(&f.to, "to", "1000", "last generator value (inclusive)")
	cmd.Flags().StringVar(&f.sign, "sign", "both", "plus|minus|both")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent searches (0 = config or one per CPU)")
	cmd.Flags().BoolVar(&f.resume, "resume", false, "skip values already recorded in the ledger")
	cmd.Flags().BoolVar(&f.progress, "progress", true, "show a progress bar on stderr")
	return cmd
}

func parseSigns(s string) ([]domain.Sign, error) {
	switch s {
	case "plus", "+":
		return []domain.Sign{domain.Plus}, nil
	case "minus", "-":
		return []domain.Sign{domain.Minus}, nil
	case "both":
		return []domain.Sign{domain.Plus, domain.Minus}, nil
	default:
		return nil, fmt.Errorf("invalid --sign %q (valid: plus, minus, both)", s)
	}
}

func (a *app) runBatch(cmd *cobra.Command, f batchFlags, workersSet bool) error {
	from, ok := arith.Parse(f.from)
	if !ok {
		return fmt.Errorf("invalid --from %q", f.from)
	}
	to, ok := arith.Parse(f.to)
	if !ok {
		return fmt.Errorf("invalid --to %q", f.to)
	}
	signs, err := parseSigns(f.sign)
	if err != nil {
		return err
	}
	if f.resume && !a.cfg.Ledger.Enabled {
		return fmt.Errorf("--resume requires the ledger (--ledger or ledger.enabled)")
	}
	workers := a.cfg.Batch.Workers
	if workersSet {
		workers = f.workers
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, closeFn, err := a.service(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	defer a.log.Sync() //nolint:errcheck

	// Ranges beyond int64 get an indeterminate spinner.
	total, err := strconv.ParseInt(usecase.Count(from, to, len(signs)).String(), 10, 64)
	if err != nil {
		total = -1
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("searching"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(f.progress),
		progressbar.OptionClearOnFinish(),
	)

	var searched, resumed, finds int
	out := cmd.OutOrStdout()
	start := time.Now()
	err = svc.Batch(ctx, usecase.Range(from, to, signs...), usecase.BatchOptions{
		Workers: workers,
		Resume:  f.resume,
	}, func(r *usecase.Report) {
		if r.Resumed {
			resumed++
		} else {
			searched++
		}
		for _, e := range r.Finds {
			fmt.Fprintln(out, e.Artifact)
			finds++
		}
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "%d values searched, %d resumed, %d finds in %v\n",
		searched, resumed, finds, time.Since(start).Round(time.Millisecond))
	if err != nil {
		a.log.Error("batch stopped", zap.Error(err))
		return err
	}
	return nil
}
