package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dhamidi/derive/grammar"
	"github.com/spf13/cobra"
)

func newGrammarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Grammar file tools",
	}

	cmd.AddCommand(newGrammarCheckCmd(a))
	cmd.AddCommand(newGrammarShowCmd(a))

	return cmd
}

func newGrammarCheckCmd(a *app) *cobra.Command {
	var cnf bool
	var ebnfVerify bool

	cmd := &cobra.Command{
		Use:   "check <pattern>...",
		Short: "Load and validate grammar files",
		Long: `Load and validate grammar files.

Patterns may use ** to match any number of directories, for example
"grammars/**/*.ebnf".`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var paths []string
			for _, pattern := range args {
				matches, err := doublestar.FilepathGlob(pattern)
				if err != nil {
					return fmt.Errorf("expand %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					return fmt.Errorf("%s: no such file", pattern)
				}
				paths = append(paths, matches...)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range paths {
				if err := checkGrammar(path, a.start, cnf, ebnfVerify); err != nil {
					printErrors(out, path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", path)
			}
			if failed > 0 {
				err := fmt.Errorf("%d of %d grammars failed", failed, len(paths))
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cnf, "cnf", false, "require strict Chomsky normal form")
	cmd.Flags().BoolVar(&ebnfVerify, "ebnf-verify", false, "also require every EBNF production to be defined and reachable")

	return cmd
}

func checkGrammar(path, start string, cnf, ebnfVerify bool) error {
	g, err := grammar.Load(path, start)
	if err != nil {
		return err
	}
	if cnf {
		if err := grammar.ValidateCNF(g); err != nil {
			return err
		}
	}
	if ebnfVerify && grammar.FormatOf(path) == grammar.FormatEBNF {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		if err := grammar.VerifyEBNF(path, f, g.Start().Name); err != nil {
			return err
		}
	}
	return nil
}

func printErrors(w io.Writer, path string, err error) {
	var verr *grammar.ValidationError
	if errors.As(err, &verr) {
		for _, e := range verr.Errors {
			fmt.Fprintf(w, "%s: %v\n", path, e)
		}
		return
	}
	var serr *grammar.SyntaxError
	if errors.As(err, &serr) {
		fmt.Fprintln(w, serr)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", path, err)
}

func newGrammarShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <grammar>",
		Short: "Print a grammar's rules in rule-list form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrammar(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%%start %s\n", g.Start().Name)
			for _, r := range g.Rules() {
				fmt.Fprintln(out, r)
			}
			return nil
		},
	}

	return cmd
}
