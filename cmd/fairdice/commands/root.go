// Package commands wires the fairdice CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	root := &cobra.Command{
		Use:           "fairdice",
		Short:         "Provably fair dice game and commitment verifier",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(playCmd(), verifyCmd(), serveCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
