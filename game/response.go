package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/lordvidex/x/ptr"

	"github.com/kodekulture/taboo-server/game/word"
)

// Response is the session payload returned to clients. The secret word and
// its banned terms are redacted while the game is running: the reference
// behavior of echoing them to the guesser is a trust boundary leak, not a
// contract.
type Response struct {
	ID          uuid.UUID      `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	Config      Config         `json:"config"`
	Status      string         `json:"status"`
	Attempt     int            `json:"attempt"`
	MaxAttempts int            `json:"max_attempts"`
	Hint        string         `json:"hint,omitempty"`
	Guesses     []word.Guess   `json:"guesses"`
	Word        *string        `json:"word,omitempty"`   // set once the session has ended
	Banned      []string       `json:"banned,omitempty"` // set once the session has ended
	Props       map[string]any `json:"props,omitempty"`  // backend display fields, secret removed
}

// redactedKeys never leave the server while a session is active.
var redactedKeys = []string{"word", "banned"}

func ToResponse(v View) Response {
	setWord := func() *string {
		if !v.Status.Terminal() || v.Secret.Answer == "" {
			return nil
		}
		return ptr.String(v.Secret.Answer)
	}
	var banned []string
	if v.Status.Terminal() {
		banned = v.Secret.Banned
	}
	return Response{
		ID:          v.ID,
		CreatedAt:   v.CreatedAt,
		Config:      v.Config,
		Status:      v.Status.String(),
		Attempt:     v.Attempts,
		MaxAttempts: MaxAttempts,
		Hint:        v.Hint,
		Guesses:     v.Wrongs,
		Word:        setWord(),
		Banned:      banned,
		Props:       redact(v.Secret.Props),
	}
}

func redact(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	for _, k := range redactedKeys {
		delete(out, k)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// GuessResponse shows the player the effect of a single guess.
type GuessResponse struct {
	Correct      bool     `json:"correct"`
	Similarity   float64  `json:"similarity"`
	Status       string   `json:"status"`
	Attempt      int      `json:"attempt"`
	AttemptsLeft int      `json:"attempts_left"`
	Word         *string  `json:"word,omitempty"` // revealed when the guess ended the game
	Banned       []string `json:"banned,omitempty"`
}

func ToGuessResponse(r Result, secret word.Word) GuessResponse {
	out := GuessResponse{
		Correct:      r.Correct,
		Similarity:   r.Similarity,
		Status:       r.Status.String(),
		Attempt:      r.Attempt,
		AttemptsLeft: r.AttemptsLeft,
	}
	if r.Status.Terminal() {
		out.Word = ptr.String(secret.Answer)
		out.Banned = secret.Banned
	}
	return out
}

// HintResponse is returned by hint endpoints.
type HintResponse struct {
	Hint        string `json:"hint"`
	Attempt     int    `json:"attempt,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
}
