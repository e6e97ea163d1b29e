package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dhamidi/derive/grammar"
	"github.com/dhamidi/derive/parse"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <grammar> <word>...",
		Short: "Report whether each word is in the language of a grammar",
		Long: `Report whether each word is in the language of a grammar.

Words are split into terminals of the grammar by longest match; spaces
separate terminals explicitly. Pass "" for the empty word.

Exits with status 1 if any word is rejected.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			rejected, err := checkWords(cmd.Context(), cmd.OutOrStdout(), g, a.parser(g), args[1:])
			if err != nil {
				return err
			}
			if rejected > 0 {
				return fmt.Errorf("%d of %d words rejected", rejected, len(args)-1)
			}
			return nil
		},
	}

	return cmd
}

// checkWords prints one verdict per input and returns how many were
// rejected.
func checkWords(ctx context.Context, out io.Writer, g *grammar.Grammar, p *parse.Parser, inputs []string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rejected := 0
	for _, input := range inputs {
		w, err := readWord(g, input)
		if err != nil {
			fmt.Fprintf(out, "%q: %v\n", input, err)
			rejected++
			continue
		}
		ok, err := p.Recognize(ctx, w)
		if err != nil {
			return rejected, fmt.Errorf("check %q: %w", input, err)
		}
		verdict := "accepted"
		if !ok {
			verdict = "rejected"
			rejected++
		}
		fmt.Fprintf(out, "%q: %s\n", input, verdict)
	}
	return rejected, nil
}
