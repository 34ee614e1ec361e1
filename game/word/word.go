// Package word holds the taboo word domain: the secret word and its banned
// terms, backend response normalization, and guess similarity scoring.
package word

import (
	"fmt"
	"strings"

	"github.com/lordvidex/errs/v2"
)

// Word is the normalized result of word generation. Answer is the lowercased
// comparison key used for the whole session; Props preserves every field the
// backend returned (original casing included) because the hint generator
// replays them verbatim.
type Word struct {
	Answer string
	Banned []string
	Props  map[string]any
}

// Guess is a wrong guess paired with the hint that was shown for it.
// The JSON keys are part of the backend prompt contract.
type Guess struct {
	Predict  string `json:"predict" validate:"required"`
	Sentence string `json:"sentence" validate:"required"`
}

// FromContent builds a Word from a normalized backend payload. Unlike hint
// extraction this is strict: a session without a secret word is unplayable,
// so anything but a JSON object carrying a non-empty "word" string fails.
func FromContent(c Content) (Word, error) {
	props, ok := c.Structured()
	if !ok {
		return Word{}, malformed("payload is not a JSON object", c.Raw())
	}
	raw, ok := props["word"]
	if !ok {
		return Word{}, malformed("missing 'word' key", c.Raw())
	}
	answer, ok := raw.(string)
	if !ok {
		return Word{}, malformed("'word' is not a string", c.Raw())
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return Word{}, malformed("'word' is empty", c.Raw())
	}
	return Word{
		Answer: answer,
		Banned: bannedTerms(props),
		Props:  props,
	}, nil
}

// FromProps rebuilds a Word from caller-supplied properties, used by the
// stateless hint endpoint where the client holds the word state.
func FromProps(props map[string]any) (Word, error) {
	if props == nil {
		return Word{}, errs.B().Code(errs.InvalidArgument).Msg("word props are required").Err()
	}
	w := Word{Props: props, Banned: bannedTerms(props)}
	if s, ok := props["word"].(string); ok {
		w.Answer = strings.ToLower(strings.TrimSpace(s))
	}
	return w, nil
}

func bannedTerms(props map[string]any) []string {
	raw, ok := props["banned"].([]any)
	if !ok {
		return nil
	}
	terms := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			terms = append(terms, s)
		}
	}
	return terms
}

// malformed keeps the raw backend content in the error for diagnosis.
func malformed(reason, raw string) error {
	return errs.B().Code(errs.InvalidArgument).
		Msg(fmt.Sprintf("invalid taboo word response format: %s; response: %s", reason, raw)).Err()
}
