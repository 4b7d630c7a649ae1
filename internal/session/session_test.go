package session

import (
	"errors"
	"testing"

	"github.com/mwetzel/fairdice/internal/engine"
	"github.com/mwetzel/fairdice/internal/games"
)

// zeroReader makes every protocol round deterministic: all keys are zero
// bytes and every secret number samples to 0.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// brokenReader simulates entropy exhaustion.
type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

type reply struct {
	n   int
	err error
}

// scriptPrompter answers prompts from a fixed script and cancels once the
// script runs out.
type scriptPrompter struct {
	replies []reply
}

func (p *scriptPrompter) AskInt(prompt string, lo, hi int) (int, error) {
	if len(p.replies) == 0 {
		return 0, ErrCancelled
	}
	r := p.replies[0]
	p.replies = p.replies[1:]
	return r.n, r.err
}

type committedRound struct {
	round      Round
	max        int
	commitment string
}

// recordingObserver captures every protocol event for assertions.
type recordingObserver struct {
	commits   []committedRound
	reveals   map[Round]Reveal
	picks     map[Actor]games.Die
	rolls     map[Actor]int
	helpCalls int
	firstMove *bool
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		reveals: make(map[Round]Reveal),
		picks:   make(map[Actor]games.Die),
		rolls:   make(map[Actor]int),
	}
}

func (o *recordingObserver) RoundCommitted(round Round, max int, commitment string) {
	o.commits = append(o.commits, committedRound{round, max, commitment})
}

func (o *recordingObserver) RoundRevealed(round Round, reveal Reveal) {
	o.reveals[round] = reveal
}

func (o *recordingObserver) FirstMoveDecided(computerFirst bool) {
	o.firstMove = &computerFirst
}

func (o *recordingObserver) DiePicked(actor Actor, die games.Die) {
	o.picks[actor] = die
}

func (o *recordingObserver) Rolled(actor Actor, die games.Die, index, face int) {
	o.rolls[actor] = face
}

func (o *recordingObserver) HelpRequested(dice []games.Die) {
	o.helpCalls++
}

func testDice(t *testing.T) []games.Die {
	t.Helper()
	specs := [][]int{
		{1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2},
		{3, 3, 3, 3, 3, 3},
	}
	dice := make([]games.Die, 0, len(specs))
	for _, faces := range specs {
		die, err := games.NewDie(faces)
		if err != nil {
			t.Fatalf("NewDie returned error: %v", err)
		}
		dice = append(dice, die)
	}
	return dice
}

func TestNewRejectsTooFewDice(t *testing.T) {
	dice := testDice(t)[:2]
	if _, err := New(dice, &scriptPrompter{}, nil); !errors.Is(err, ErrTooFewDice) {
		t.Fatalf("New with 2 dice = %v, want ErrTooFewDice", err)
	}
}

func TestNewRejectsZeroFaceDie(t *testing.T) {
	dice := append(testDice(t), games.Die{})
	if _, err := New(dice, &scriptPrompter{}, nil); !errors.Is(err, games.ErrNoFaces) {
		t.Fatalf("New with empty die = %v, want ErrNoFaces", err)
	}
}

// TestPlayUserWins drives a full game with deterministic entropy. All
// secrets are 0, so the first-move result equals the user's guess mod 2
// and each roll index equals the user's additive number.
func TestPlayUserWins(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{
		{n: 1}, // guess: result 1 != secret 0, user moves first
		{n: 2}, // user picks the all-threes die
		{n: 4}, // computer roll addend: index 4, face 1
		{n: 3}, // user roll addend: index 3, face 3
	}}
	observer := newRecordingObserver()
	sess, err := New(testDice(t), prompter, observer,
		WithEntropy(zeroReader{}),
		WithPick(func(n int) int { return 0 }), // computer takes the all-ones die
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := sess.Play()
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if sess.Phase() != PhaseResolved {
		t.Fatalf("phase = %s, want resolved", sess.Phase())
	}
	if result.Outcome != OutcomeUserWins {
		t.Fatalf("outcome = %s, want user wins", result.Outcome)
	}
	if result.ComputerFirst {
		t.Fatal("user guessed 1, user should move first")
	}
	if result.ComputerFace != 1 || result.UserFace != 3 {
		t.Fatalf("faces = (%d, %d), want (1, 3)", result.ComputerFace, result.UserFace)
	}

	if len(observer.commits) != 3 {
		t.Fatalf("observed %d commitments, want 3", len(observer.commits))
	}
	if got := observer.commits[0]; got.round != RoundFirstMove || got.max != 1 {
		t.Fatalf("first commitment = %+v", got)
	}
	if len(observer.reveals) != 3 {
		t.Fatalf("observed %d reveals, want 3", len(observer.reveals))
	}
}

// TestPlayRevealsVerify confirms every disclosed commitment is
// reproducible from the matching reveal, in disclosure order.
func TestPlayRevealsVerify(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{
		{n: 0}, {n: 1}, {n: 2}, {n: 5},
	}}
	observer := newRecordingObserver()
	sess, err := New(testDice(t), prompter, observer, WithPick(func(n int) int { return 1 }))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := sess.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}

	for _, c := range observer.commits {
		reveal, ok := observer.reveals[c.round]
		if !ok {
			t.Fatalf("round %s committed but never revealed", c.round)
		}
		valid, err := engine.VerifyReveal(reveal.Key, reveal.Secret, c.commitment)
		if err != nil {
			t.Fatalf("VerifyReveal returned error: %v", err)
		}
		if !valid {
			t.Fatalf("round %s reveal does not reproduce its commitment", c.round)
		}
		if want := (reveal.Secret + reveal.Counterpart) % (reveal.Max + 1); reveal.Result != want {
			t.Fatalf("round %s result %d, want %d", c.round, reveal.Result, want)
		}
	}
}

func TestPlayTieWhenFacesMatch(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{
		{n: 0}, // guess 0: result 0 == secret 0, computer moves first
		{n: 1}, // user picks the same die the computer picked
		{n: 0},
		{n: 0},
	}}
	observer := newRecordingObserver()
	sess, err := New(testDice(t), prompter, observer,
		WithEntropy(zeroReader{}),
		WithPick(func(n int) int { return 1 }),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := sess.Play()
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if result.Outcome != OutcomeTie {
		t.Fatalf("outcome = %s, want tie", result.Outcome)
	}
	if !result.ComputerFirst {
		t.Fatal("guess 0 with zero secret should give the computer first move")
	}
	// Same die in the pool for both parties is allowed.
	if observer.picks[ActorComputer].String() != observer.picks[ActorUser].String() {
		t.Fatal("both parties should hold the same die")
	}
}

func TestPlayCancelledAtFirstMove(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{{err: ErrCancelled}}}
	observer := newRecordingObserver()
	sess, err := New(testDice(t), prompter, observer)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := sess.Play()
	if err != nil {
		t.Fatalf("cancellation is not an error, got: %v", err)
	}
	if result.Outcome != OutcomeCancelled {
		t.Fatalf("outcome = %s, want cancelled", result.Outcome)
	}
	if sess.Phase() != PhaseCancelled {
		t.Fatalf("phase = %s, want cancelled", sess.Phase())
	}
	// The commitment was already disclosed; nothing else may be.
	if len(observer.reveals) != 0 {
		t.Fatal("no reveal should follow a cancelled round")
	}
	if len(observer.rolls) != 0 {
		t.Fatal("no die should be rolled after cancellation")
	}
}

func TestPlayCancelledAtDieSelection(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{
		{n: 1},
		{err: ErrCancelled},
	}}
	sess, err := New(testDice(t), prompter, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := sess.Play()
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if result.Outcome != OutcomeCancelled || sess.Phase() != PhaseCancelled {
		t.Fatalf("outcome = %s, phase = %s, want cancelled", result.Outcome, sess.Phase())
	}
}

// TestPlayHelpIsNonConsuming checks that asking for the probability table
// shows it and re-asks the same question without advancing the game.
func TestPlayHelpIsNonConsuming(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{
		{err: ErrHelp},
		{err: ErrHelp},
		{n: 0},
		{n: 1},
		{n: 0},
		{n: 0},
	}}
	observer := newRecordingObserver()
	sess, err := New(testDice(t), prompter, observer,
		WithEntropy(zeroReader{}),
		WithPick(func(n int) int { return 1 }),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := sess.Play()
	if err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if observer.helpCalls != 2 {
		t.Fatalf("help shown %d times, want 2", observer.helpCalls)
	}
	if result.Outcome == OutcomeCancelled {
		t.Fatal("help must not end the game")
	}
	if len(observer.commits) != 3 {
		t.Fatalf("observed %d commitments, want 3", len(observer.commits))
	}
}

func TestPlayEntropyFailureAborts(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{{n: 0}}}
	sess, err := New(testDice(t), prompter, nil, WithEntropy(brokenReader{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := sess.Play(); err == nil {
		t.Fatal("Play should abort on entropy failure")
	}
	if sess.Phase() == PhaseResolved {
		t.Fatal("a failed game must not resolve")
	}
}

func TestPlayRejectsOutOfRangePrompterValue(t *testing.T) {
	prompter := &scriptPrompter{replies: []reply{{n: 7}}}
	sess, err := New(testDice(t), prompter, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := sess.Play(); err == nil {
		t.Fatal("Play should reject a prompter value outside the announced range")
	}
}
