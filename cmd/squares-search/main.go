// Command squares-search looks for 3x3 magic squares whose cells are perfect squares.
//
// Without a subcommand it reads generator values from stdin, one per line, and
// writes the name of every reported grid followed by "_" after each value.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"svw.info/magicsquares/internal/adapters/stdio"
	"svw.info/magicsquares/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, stdio.ErrInvalidInput) && !errors.Is(err, stdio.ErrTruncated) {
		fmt.Fprintln(stderr, "error:", err)
	}
	return exitCode(err)
}

// exitCode maps command errors onto the stdin protocol's exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, stdio.ErrTruncated):
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "squares-search",
		Short: "Search for magic squares of squares",
		Long: `squares-search builds 3x3 grids from pairs of arithmetic progressions of
perfect squares sharing a middle term, and reports grids with many square cells.

Reads one value per line from stdin: "<k>", "<k>+" or "<k>-" searches the
number 6k+1 or 6k-1; a line starting with "q" quits. After each value the
names of all written .result files are printed, then "_".

Exit codes: 0 on quit, 1 on a malformed value, 2 when the input ends mid-line.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runStdin,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", config.DefaultPath, "config file (YAML)")
	pf.StringVar(&a.outputDir, "output-dir", "", "directory for .result files")
	pf.StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error")
	pf.BoolVar(&a.ledger, "ledger", false, "record finds in the SQLite ledger")
	pf.IntVar(&a.threshold, "threshold", 0, "report grids with more perfect squares than this")

	root.AddCommand(newBatchCmd(a), newFindsCmd(a), newHTTPCmd(a), newConfigCmd(a))
	return root
}

func (a *app) runStdin(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := a.service(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	defer a.log.Sync() //nolint:errcheck

	return stdio.NewSession(svc, cmd.InOrStdin(), cmd.OutOrStdout(), a.log).Run(cmd.Context())
}
