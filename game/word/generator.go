// generator.go: generates taboo words and hints through the backend

package word

import "context"

// Generator produces a secret word for a game configuration and hints
// conditioned on the accumulated wrong-guess history.
type Generator interface {
	// Generate requests a new secret word. params is any JSON-serializable
	// value describing the game (topic, difficulty, language, ...).
	Generate(ctx context.Context, params any) (Word, error)

	// Hint requests the next hint. The backend holds no session memory:
	// all continuity is carried in props and wrongs.
	Hint(ctx context.Context, props map[string]any, wrongs []Guess) (string, error)
}
