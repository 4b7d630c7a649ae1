package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwetzel/fairdice/internal/cli"
	"github.com/mwetzel/fairdice/internal/games"
	"github.com/mwetzel/fairdice/internal/session"
)

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play 2,2,4,4,9,9 1,1,6,6,8,8 3,3,5,5,7,7 [die...]",
		Short: "Play an interactive game against the computer",
		Args:  cobra.MinimumNArgs(session.MinDice),
		RunE: func(cmd *cobra.Command, args []string) error {
			dice := make([]games.Die, 0, len(args))
			for _, spec := range args {
				die, err := games.ParseDie(spec)
				if err != nil {
					return err
				}
				dice = append(dice, die)
			}

			prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
			observer := cli.NewObserver(cmd.OutOrStdout())
			sess, err := session.New(dice, prompter, observer)
			if err != nil {
				return err
			}

			result, err := sess.Play()
			if err != nil {
				return err
			}
			switch result.Outcome {
			case session.OutcomeCancelled:
				fmt.Fprintln(cmd.OutOrStdout(), "Game cancelled.")
			case session.OutcomeTie:
				fmt.Fprintf(cmd.OutOrStdout(), "It's a tie (%d = %d)!\n", result.UserFace, result.ComputerFace)
			case session.OutcomeUserWins:
				fmt.Fprintf(cmd.OutOrStdout(), "You win (%d > %d)!\n", result.UserFace, result.ComputerFace)
			case session.OutcomeComputerWins:
				fmt.Fprintf(cmd.OutOrStdout(), "I win (%d > %d)!\n", result.ComputerFace, result.UserFace)
			}
			return nil
		},
	}
}
