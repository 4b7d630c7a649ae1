// Package session drives one game between the computer and the user: a
// fair-number round to decide who moves first, die selection, and one
// protocol round per roll.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/mwetzel/fairdice/internal/engine"
	"github.com/mwetzel/fairdice/internal/games"
)

// MinDice is the smallest die set the game accepts.
const MinDice = 3

var (
	// ErrCancelled is returned by a Prompter when the user quits. It is
	// a clean terminal transition, not a failure.
	ErrCancelled = errors.New("cancelled by user")

	// ErrHelp is returned by a Prompter when the user asks for the
	// probability table. The session shows the table and re-asks.
	ErrHelp = errors.New("help requested")

	// ErrTooFewDice indicates the configured die set is too small.
	ErrTooFewDice = errors.New("at least 3 dice are required")
)

// Phase is the state of the game state machine.
type Phase int

const (
	PhaseDecidingFirstMove Phase = iota
	PhaseSelectingDice
	PhaseComputerRolling
	PhaseUserRolling
	PhaseResolved
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseDecidingFirstMove:
		return "deciding_first_move"
	case PhaseSelectingDice:
		return "selecting_dice"
	case PhaseComputerRolling:
		return "computer_rolling"
	case PhaseUserRolling:
		return "user_rolling"
	case PhaseResolved:
		return "resolved"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Actor identifies a party in the game.
type Actor int

const (
	ActorComputer Actor = iota
	ActorUser
)

func (a Actor) String() string {
	if a == ActorComputer {
		return "computer"
	}
	return "user"
}

// Round identifies which of the three protocol rounds is running.
type Round int

const (
	RoundFirstMove Round = iota
	RoundComputerRoll
	RoundUserRoll
)

func (r Round) String() string {
	switch r {
	case RoundFirstMove:
		return "first_move"
	case RoundComputerRoll:
		return "computer_roll"
	case RoundUserRoll:
		return "user_roll"
	default:
		return "unknown"
	}
}

// Reveal carries everything the counterpart needs to audit a spent
// protocol round.
type Reveal struct {
	Max         int
	Key         string
	Secret      int
	Counterpart int
	Result      int
}

// Prompter is the input collaborator. AskInt solicits an integer in
// [lo, hi] inclusive and returns ErrCancelled when the user quits or
// ErrHelp when the user asks for the probability table.
type Prompter interface {
	AskInt(prompt string, lo, hi int) (int, error)
}

// Observer is the output collaborator. It receives each round's
// commitment at disclosure time and the reveal tuple after the result is
// computed, plus die picks, rolls and help tables.
type Observer interface {
	RoundCommitted(round Round, max int, commitment string)
	RoundRevealed(round Round, reveal Reveal)
	FirstMoveDecided(computerFirst bool)
	DiePicked(actor Actor, die games.Die)
	Rolled(actor Actor, die games.Die, index, face int)
	HelpRequested(dice []games.Die)
}

// Outcome is the final determination of a game.
type Outcome int

const (
	OutcomeComputerWins Outcome = iota
	OutcomeUserWins
	OutcomeTie
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComputerWins:
		return "computer wins"
	case OutcomeUserWins:
		return "user wins"
	case OutcomeTie:
		return "tie"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is the end state of a played game. Die and face fields are
// meaningful only when Outcome is not OutcomeCancelled.
type Result struct {
	Outcome       Outcome
	ComputerFirst bool
	ComputerDie   games.Die
	UserDie       games.Die
	ComputerFace  int
	UserFace      int
}

// Option configures a Session.
type Option func(*Session)

// WithEntropy replaces the cryptographic byte source, enabling
// deterministic substitution in tests.
func WithEntropy(src io.Reader) Option {
	return func(s *Session) { s.entropy = src }
}

// WithPick replaces the non-cryptographic picker the computer uses to
// choose its die. pick(n) must return a value in [0, n).
func WithPick(pick func(n int) int) Option {
	return func(s *Session) { s.pick = pick }
}

// WithLogger attaches a logger for protocol events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is one game in flight. It owns each FairRandom instance for
// exactly one round and discards it once revealed; nothing persists after
// Play returns.
type Session struct {
	id       uuid.UUID
	dice     []games.Die
	prompter Prompter
	observer Observer
	entropy  io.Reader
	pick     func(n int) int
	logger   *log.Logger

	phase         Phase
	computerFirst bool
	computerDie   games.Die
	userDie       games.Die
	computerFace  int
	userFace      int
}

// New validates the die set and builds a session. The observer may be
// nil.
func New(dice []games.Die, prompter Prompter, observer Observer, opts ...Option) (*Session, error) {
	if len(dice) < MinDice {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewDice, len(dice))
	}
	for i, d := range dice {
		if d.NumFaces() == 0 {
			return nil, fmt.Errorf("die %d: %w", i, games.ErrNoFaces)
		}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	s := &Session{
		id:       uuid.New(),
		dice:     append([]games.Die(nil), dice...),
		prompter: prompter,
		observer: observer,
		pick:     rand.IntN,
		logger:   log.New(io.Discard, "", 0),
		phase:    PhaseDecidingFirstMove,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier stamped on protocol log lines.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current state-machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Dice returns the die set the session was configured with.
func (s *Session) Dice() []games.Die {
	return append([]games.Die(nil), s.dice...)
}

// Play runs the game to a terminal phase. Cancellation yields a Result
// with OutcomeCancelled and a nil error; entropy failures and
// collaborator errors abort the game.
func (s *Session) Play() (Result, error) {
	if err := s.decideFirstMove(); err != nil {
		return s.finish(err)
	}
	if err := s.selectDice(); err != nil {
		return s.finish(err)
	}
	if err := s.roll(ActorComputer); err != nil {
		return s.finish(err)
	}
	if err := s.roll(ActorUser); err != nil {
		return s.finish(err)
	}

	s.phase = PhaseResolved
	result := Result{
		Outcome:       OutcomeTie,
		ComputerFirst: s.computerFirst,
		ComputerDie:   s.computerDie,
		UserDie:       s.userDie,
		ComputerFace:  s.computerFace,
		UserFace:      s.userFace,
	}
	switch {
	case s.computerFace > s.userFace:
		result.Outcome = OutcomeComputerWins
	case s.userFace > s.computerFace:
		result.Outcome = OutcomeUserWins
	}
	s.logger.Printf("game_resolved session=%s outcome=%s computer_face=%d user_face=%d",
		s.id, result.Outcome, s.computerFace, s.userFace)
	return result, nil
}

func (s *Session) decideFirstMove() error {
	s.phase = PhaseDecidingFirstMove
	reveal, err := s.runRound(RoundFirstMove, 1, "Try to guess my number")
	if err != nil {
		return err
	}
	s.computerFirst = reveal.Result == reveal.Secret
	s.observer.FirstMoveDecided(s.computerFirst)
	s.logger.Printf("first_move session=%s computer_first=%t", s.id, s.computerFirst)
	return nil
}

func (s *Session) selectDice() error {
	s.phase = PhaseSelectingDice
	if s.computerFirst {
		s.pickComputerDie()
		return s.pickUserDie()
	}
	if err := s.pickUserDie(); err != nil {
		return err
	}
	s.pickComputerDie()
	return nil
}

// pickComputerDie uses plain, non-cryptographic randomness. Die selection
// is not a fairness-critical operation: the pool is public and the user
// picks from the same full pool afterwards.
func (s *Session) pickComputerDie() {
	s.computerDie = s.dice[s.pick(len(s.dice))]
	s.observer.DiePicked(ActorComputer, s.computerDie)
}

func (s *Session) pickUserDie() error {
	i, err := s.askInt("Choose your die", 0, len(s.dice)-1)
	if err != nil {
		return err
	}
	s.userDie = s.dice[i]
	s.observer.DiePicked(ActorUser, s.userDie)
	return nil
}

func (s *Session) roll(actor Actor) error {
	var die games.Die
	var round Round
	if actor == ActorComputer {
		s.phase = PhaseComputerRolling
		die = s.computerDie
		round = RoundComputerRoll
	} else {
		s.phase = PhaseUserRolling
		die = s.userDie
		round = RoundUserRoll
	}

	reveal, err := s.runRound(round, die.NumFaces()-1, "Add your number")
	if err != nil {
		return err
	}
	face := die.FaceAt(reveal.Result)
	if actor == ActorComputer {
		s.computerFace = face
	} else {
		s.userFace = face
	}
	s.observer.Rolled(actor, die, reveal.Result, face)
	s.logger.Printf("rolled session=%s actor=%s index=%d face=%d", s.id, actor, reveal.Result, face)
	return nil
}

// runRound executes one commit-reveal round: commit, disclose, solicit
// the counterpart number, compute, reveal. The FairRandom instance never
// leaves this function.
func (s *Session) runRound(round Round, max int, prompt string) (Reveal, error) {
	fr, err := engine.NewFairRandom(s.entropy, max)
	if err != nil {
		return Reveal{}, err
	}
	s.observer.RoundCommitted(round, max, fr.Commitment())
	s.logger.Printf("round_commit session=%s round=%s max=%d commitment=%s",
		s.id, round, max, fr.Commitment())

	n, err := s.askInt(prompt, 0, max)
	if err != nil {
		return Reveal{}, err
	}
	result, err := fr.ComputeResult(n)
	if err != nil {
		return Reveal{}, err
	}
	reveal := Reveal{
		Max:         max,
		Key:         fr.Key(),
		Secret:      fr.SecretNumber(),
		Counterpart: n,
		Result:      result,
	}
	s.observer.RoundRevealed(round, reveal)
	s.logger.Printf("round_reveal session=%s round=%s secret=%d counterpart=%d result=%d key=%s",
		s.id, round, reveal.Secret, n, result, reveal.Key)
	return reveal, nil
}

// askInt is a suspension point. Help is a non-consuming side transition:
// the table is shown and the same question is asked again.
func (s *Session) askInt(prompt string, lo, hi int) (int, error) {
	for {
		n, err := s.prompter.AskInt(prompt, lo, hi)
		if errors.Is(err, ErrHelp) {
			s.observer.HelpRequested(s.Dice())
			continue
		}
		if err != nil {
			return 0, err
		}
		if n < lo || n > hi {
			return 0, fmt.Errorf("prompter returned %d outside [%d, %d]", n, lo, hi)
		}
		return n, nil
	}
}

func (s *Session) finish(err error) (Result, error) {
	if errors.Is(err, ErrCancelled) {
		s.logger.Printf("game_cancelled session=%s phase=%s", s.id, s.phase)
		s.phase = PhaseCancelled
		return Result{Outcome: OutcomeCancelled}, nil
	}
	return Result{}, err
}

type nopObserver struct{}

func (nopObserver) RoundCommitted(Round, int, string) {}
func (nopObserver) RoundRevealed(Round, Reveal)       {}
func (nopObserver) FirstMoveDecided(bool)             {}
func (nopObserver) DiePicked(Actor, games.Die)        {}
func (nopObserver) Rolled(Actor, games.Die, int, int) {}
func (nopObserver) HelpRequested([]games.Die)         {}
