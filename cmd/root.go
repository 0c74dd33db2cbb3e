package main

import (
	"github.com/firmazk/xmlwitness/cmd/witnessgen"
	"github.com/spf13/cobra"
)

// Init the cmd
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmlwitness",
		Short: "Signed-XML ZK witness generator",
		Long:  `Tools and APIs for converting digitally-signed XML documents into fixed-shape witnesses for a hash-and-RSA zero-knowledge circuit`,
	}

	rootCmd.AddCommand(
		witnessgen.NewGenerateCmd(),
		witnessgen.NewServeCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}
