// Package cli implements the interactive terminal collaborators for a
// game session: reading the user's choices and printing protocol events.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwetzel/fairdice/internal/session"
)

// Prompter reads the user's answers line by line. "X" cancels the game
// and "?" asks for the probability table; anything that is not an integer
// in the announced range re-prompts.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// AskInt implements session.Prompter.
func (p *Prompter) AskInt(prompt string, lo, hi int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s [%d..%d] (X to exit, ? for help): ", prompt, lo, hi)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, session.ErrCancelled
		}
		answer := strings.TrimSpace(p.in.Text())
		switch strings.ToUpper(answer) {
		case "X":
			return 0, session.ErrCancelled
		case "?":
			return 0, session.ErrHelp
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < lo || n > hi {
			fmt.Fprintf(p.out, "Please enter a number between %d and %d.\n", lo, hi)
			continue
		}
		return n, nil
	}
}
