package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/derive/format"
	"github.com/dhamidi/derive/parse"
	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var verify bool
	var showSteps bool

	cmd := &cobra.Command{
		Use:   "parse <grammar> <word>",
		Short: "Print a parse tree for a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			w, err := readWord(g, args[1])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Output.Format
			}
			var style *format.Style
			if a.cfg.Output.Color {
				style = format.DefaultStyle()
			}
			out := cmd.OutOrStdout()
			encoder, err := format.NewEncoder(outputFormat, out, style)
			if err != nil {
				return err
			}

			p := a.parser(g)
			match, err := p.Match(cmd.Context(), w)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			if match == nil {
				return fmt.Errorf("%q is not in the language of %s", args[1], args[0])
			}

			var tree *parse.Node
			if w.IsEmpty() {
				tree = parse.EmptyTree(g.Start())
			} else if tree, err = parse.Build(match); err != nil {
				return fmt.Errorf("build tree: %w", err)
			}

			if showSteps {
				if err := format.WriteDerivation(os.Stderr, match); err != nil {
					return err
				}
			}
			if verify {
				if err := parse.Verify(g, tree); err != nil {
					return fmt.Errorf("verify: %w", err)
				}
			}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, bracket)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the tree against the grammar before printing")
	cmd.Flags().BoolVar(&showSteps, "steps", false, "print the derivation to stderr")

	return cmd
}
