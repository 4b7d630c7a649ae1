package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwetzel/fairdice/internal/engine"
)

func verifyCmd() *cobra.Command {
	var (
		keyHex     string
		secret     int
		commitment string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a revealed round against its commitment",
		RunE: func(cmd *cobra.Command, args []string) error {
			valid, err := engine.VerifyReveal(keyHex, secret, commitment)
			if err != nil {
				return err
			}
			if !valid {
				fmt.Fprintln(cmd.OutOrStdout(), "MISMATCH: the revealed key and number do not reproduce the commitment.")
				return fmt.Errorf("commitment mismatch")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK: commitment verified.")
			return nil
		},
	}

	cmd.Flags().StringVar(&keyHex, "key", "", "revealed key (hex)")
	cmd.Flags().IntVar(&secret, "secret", 0, "revealed secret number")
	cmd.Flags().StringVar(&commitment, "commitment", "", "originally disclosed commitment (hex)")
	cmd.MarkFlagRequired("key")
	cmd.MarkFlagRequired("secret")
	cmd.MarkFlagRequired("commitment")

	return cmd
}
