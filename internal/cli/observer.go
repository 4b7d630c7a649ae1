package cli

import (
	"fmt"
	"io"

	"github.com/mwetzel/fairdice/internal/games"
	"github.com/mwetzel/fairdice/internal/session"
)

// Observer prints protocol events to the terminal as the game advances.
type Observer struct {
	out io.Writer
}

// NewObserver creates an observer writing to out.
func NewObserver(out io.Writer) *Observer {
	return &Observer{out: out}
}

// RoundCommitted implements session.Observer.
func (o *Observer) RoundCommitted(round session.Round, max int, commitment string) {
	switch round {
	case session.RoundFirstMove:
		fmt.Fprintf(o.out, "Let's decide who moves first. I picked a number in [0..%d].\n", max)
	default:
		fmt.Fprintf(o.out, "I picked a number in [0..%d].\n", max)
	}
	fmt.Fprintf(o.out, "Commitment: %s\n", commitment)
}

// RoundRevealed implements session.Observer.
func (o *Observer) RoundRevealed(round session.Round, r session.Reveal) {
	fmt.Fprintf(o.out, "My number was %d (key %s).\n", r.Secret, r.Key)
	fmt.Fprintf(o.out, "Result: (%d + %d) mod %d = %d\n", r.Secret, r.Counterpart, r.Max+1, r.Result)
}

// FirstMoveDecided implements session.Observer.
func (o *Observer) FirstMoveDecided(computerFirst bool) {
	if computerFirst {
		fmt.Fprintln(o.out, "I make the first move.")
	} else {
		fmt.Fprintln(o.out, "You make the first move.")
	}
}

// DiePicked implements session.Observer.
func (o *Observer) DiePicked(actor session.Actor, die games.Die) {
	if actor == session.ActorComputer {
		fmt.Fprintf(o.out, "I choose the [%s] die.\n", die)
	} else {
		fmt.Fprintf(o.out, "You choose the [%s] die.\n", die)
	}
}

// Rolled implements session.Observer.
func (o *Observer) Rolled(actor session.Actor, die games.Die, index, face int) {
	if actor == session.ActorComputer {
		fmt.Fprintf(o.out, "My roll result is %d (face %d of [%s]).\n", face, index, die)
	} else {
		fmt.Fprintf(o.out, "Your roll result is %d (face %d of [%s]).\n", face, index, die)
	}
}

// HelpRequested implements session.Observer. It renders the pairwise
// win-probability table; the diagonal is a placeholder, a die is never
// played against itself.
func (o *Observer) HelpRequested(dice []games.Die) {
	matrix := games.ProbabilityMatrix(dice)

	labels := make([]string, len(dice))
	width := len("user die \\ opponent")
	for i, d := range dice {
		labels[i] = d.String()
		if len(labels[i]) > width {
			width = len(labels[i])
		}
	}

	fmt.Fprintln(o.out, "Probability that the row die beats the column die:")
	fmt.Fprintf(o.out, "%-*s", width+2, "user die \\ opponent")
	for _, l := range labels {
		fmt.Fprintf(o.out, "%*s", width+2, l)
	}
	fmt.Fprintln(o.out)
	for i, row := range matrix {
		fmt.Fprintf(o.out, "%-*s", width+2, labels[i])
		for _, p := range row {
			if p == nil {
				fmt.Fprintf(o.out, "%*s", width+2, "-")
				continue
			}
			fmt.Fprintf(o.out, "%*s", width+2, p.StringFixed(4))
		}
		fmt.Fprintln(o.out)
	}
}
