package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svw.info/magicsquares/internal/domain"
)

func newFindsCmd(a *app) *cobra.Command {
	var (
		class string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "finds",
		Short: "List finds recorded in the ledger, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := domain.ClassNone
			if class != "" {
				var err error
				if c, err = domain.ParseClass(class); err != nil {
					return err
				}
			}
			// Listing always needs the ledger, whatever the config says.
			a.cfg.Ledger.Enabled = true
			svc, closeFn, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			fs, err := svc.Finds(cmd.Context(), c, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range fs {
				fmt.Fprintf(out, "%s\t%s\t%s\n", f.Artifact, f.Number, f.Grid)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "ps|fh|sh1|sh2 (empty = all)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows (0 = all)")
	return cmd
}
