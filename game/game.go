// Package game implements the taboo game session: one secret word, a bounded
// number of hint rounds, and an append-only history of wrong guesses.
package game

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"

	"github.com/kodekulture/taboo-server/game/word"
)

const (
	// MaxAttempts is the number of hint rounds a player gets
	MaxAttempts = 5

	// MaxDuration is the maximum time a session is kept before it is
	// garbage collected
	MaxDuration = time.Hour
)

// Config is the immutable game configuration supplied once per session.
// Difficulty is free text by design; the backend prompt interprets it.
type Config struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
	Language   string `json:"language" validate:"required"`
}

type Status int

const (
	Initialized Status = iota
	AwaitingGuess
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case AwaitingGuess:
		return "awaiting_guess"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal returns true once no further hints or guesses are accepted.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

var (
	ErrTerminated = errs.B().Code(errs.FailedPrecondition).Msg("game session has already ended").Err()
	ErrNotStarted = errs.B().Code(errs.FailedPrecondition).Msg("secret word has not been generated yet").Err()
	ErrNoRound    = errs.B().Code(errs.InvalidArgument).Msg("no hint has been requested for this round").Err()
)

// Session owns the state of one game: the secret word, the attempt counter
// and the wrong-guess history. Every mutation happens under the session
// mutex so concurrent requests for the same session cannot interleave, and
// independent sessions share nothing.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Config    Config

	mu       sync.Mutex
	secret   word.Word
	state    Status
	attempts int
	wrongs   []word.Guess
	hint     string // hint shown for the open round
	open     bool   // a hint was issued and no guess has consumed it yet
}

func NewSession(cfg Config) *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Config:    cfg,
		state:     Initialized,
	}
}

// Start installs the generated secret word and opens the session for play.
func (s *Session) Start(secret word.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return ErrTerminated
	}
	if s.state != Initialized {
		return errs.B().Code(errs.FailedPrecondition).Msg("session already started").Err()
	}
	s.secret = secret
	s.state = AwaitingGuess
	return nil
}

// BeginRound opens a new hint round with the given hint and returns the hint
// in effect and the attempt number. Re-requesting a hint inside an open
// round returns the round's existing hint without burning an attempt.
func (s *Session) BeginRound(hint string) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return "", 0, ErrTerminated
	}
	if s.state != AwaitingGuess {
		return "", 0, ErrNotStarted
	}
	if s.open {
		return s.hint, s.attempts, nil
	}
	s.attempts++
	s.hint = hint
	s.open = true
	return s.hint, s.attempts, nil
}

// CurrentHint returns the open round's hint, if any. When ok is false a new
// hint must be generated with the full history so far.
func (s *Session) CurrentHint() (hint string, attempt int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return "", 0, false
	}
	return s.hint, s.attempts, true
}

// Result is the outcome of a single guess.
type Result struct {
	Correct      bool
	Similarity   float64
	Status       Status
	Attempt      int
	AttemptsLeft int
}

// Play evaluates one guess against the secret word. The authoritative win
// check is exact case-insensitive equality; Similarity is soft feedback only.
// A wrong guess is appended to the history together with the hint that was
// shown, and the session is lost when the last attempt is used up.
func (s *Session) Play(guess string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return Result{}, ErrTerminated
	}
	if s.state != AwaitingGuess {
		return Result{}, ErrNotStarted
	}
	if !s.open {
		return Result{}, ErrNoRound
	}
	normalized := strings.ToLower(strings.TrimSpace(guess))
	sim := word.Similarity(normalized, s.secret.Answer)
	s.open = false
	if normalized == s.secret.Answer {
		s.state = Won
	} else {
		s.wrongs = append(s.wrongs, word.Guess{Predict: normalized, Sentence: s.hint})
		if s.attempts == MaxAttempts {
			s.state = Lost
		}
	}
	return Result{
		Correct:      s.state == Won,
		Similarity:   sim,
		Status:       s.state,
		Attempt:      s.attempts,
		AttemptsLeft: MaxAttempts - s.attempts,
	}, nil
}

// Status returns the session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns the number of hint rounds used so far.
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Secret returns the secret word and its generation metadata.
func (s *Session) Secret() word.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secret
}

// Wrongs returns a copy of the wrong-guess history in insertion order.
func (s *Session) Wrongs() []word.Guess {
	s.mu.Lock()
	defer s.mu.Unlock()
	wrongs := make([]word.Guess, len(s.wrongs))
	copy(wrongs, s.wrongs)
	return wrongs
}

// View is a consistent snapshot of the session used to build responses.
type View struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Config    Config
	Status    Status
	Attempts  int
	Wrongs    []word.Guess
	Hint      string
	Secret    word.Word
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	wrongs := make([]word.Guess, len(s.wrongs))
	copy(wrongs, s.wrongs)
	var hint string
	if s.open {
		hint = s.hint
	}
	return View{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Config:    s.Config,
		Status:    s.state,
		Attempts:  s.attempts,
		Wrongs:    wrongs,
		Hint:      hint,
		Secret:    s.secret,
	}
}
