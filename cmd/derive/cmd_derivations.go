package main

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/derive/format"
	"github.com/spf13/cobra"
)

func newDerivationsCmd(a *app) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "derivations <grammar> <rewrites>",
		Short: "List every derivation of at most the given number of rewrites",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return fmt.Errorf("rewrites must be a non-negative integer, got %q", args[1])
			}

			ds, err := a.parser(g).Derivations(cmd.Context(), n)
			if err != nil {
				return fmt.Errorf("derive: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, d := range ds {
				if complete && d.Latest().HasVariable() {
					continue
				}
				fmt.Fprintln(out, format.Derivation(d))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&complete, "complete", false, "only list derivations that end in terminals")

	return cmd
}
