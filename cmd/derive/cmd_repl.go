package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dhamidi/derive/format"
	"github.com/spf13/cobra"
)

func newReplCmd(a *app) *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "repl <grammar>",
		Short: "Check words interactively",
		Long: `Check words interactively.

Each line is read as a word and answered with its parse tree, or with
"rejected". Lines starting with ':' are commands:

  :rules    print the grammar
  :reload   load the grammar file again
  :quit     leave`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			g, err := a.loadGrammar(path)
			if err != nil {
				return err
			}
			p := a.parser(g)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          filepath.Base(path) + "> ",
				HistoryFile:     historyFile,
				InterruptPrompt: "^C",
				EOFPrompt:       ":quit",
			})
			if err != nil {
				return fmt.Errorf("start readline: %w", err)
			}
			defer rl.Close()

			out := rl.Stdout()
			encoder := format.NewBracketEncoder(out)
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					if len(line) == 0 {
						return nil
					}
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				switch strings.TrimSpace(line) {
				case ":quit", ":q":
					return nil
				case ":rules":
					for _, r := range g.Rules() {
						fmt.Fprintln(out, r)
					}
					continue
				case ":reload":
					reloaded, err := a.loadGrammar(path)
					if err != nil {
						fmt.Fprintln(out, err)
						continue
					}
					g, p = reloaded, a.parser(reloaded)
					fmt.Fprintf(out, "loaded %d rules\n", len(g.Rules()))
					continue
				}

				w, err := readWord(g, line)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				tree, err := p.ParseTree(cmd.Context(), w)
				if err != nil {
					fmt.Fprintln(out, err)
					continue
				}
				if tree == nil {
					fmt.Fprintln(out, "rejected")
					continue
				}
				if err := encoder.Encode(tree); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "file to keep input history in")

	return cmd
}
