package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "derive",
		Short:             "Decide membership in context-free languages by bounded derivation",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newDerivationsCmd(a))
	rootCmd.AddCommand(newGrammarCmd(a))
	rootCmd.AddCommand(newReplCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
