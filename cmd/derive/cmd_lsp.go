package main

import (
	"github.com/dhamidi/derive/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the grammar language server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version).RunStdio()
		},
	}

	return cmd
}
