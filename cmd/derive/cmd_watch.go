package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dhamidi/derive/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <grammar> <word>...",
		Short: "Check words again whenever the grammar file changes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			path, words := args[0], args[1:]
			out := cmd.OutOrStdout()
			run := func() {
				g, err := a.loadGrammar(path)
				if err != nil {
					fmt.Fprintln(out, err)
					return
				}
				if _, err := checkWords(ctx, out, g, a.parser(g), words); err != nil {
					fmt.Fprintln(out, err)
				}
			}

			run()
			w, err := watch.New([]string{path}, watch.DefaultWindow, func(changed []string) {
				fmt.Fprintf(out, "--- %s changed\n", path)
				run()
			})
			if err != nil {
				return err
			}
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	return cmd
}
