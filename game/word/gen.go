package word

import "context"

// historyKey is the payload key the hint prompt expects previous wrong
// guesses under.
const historyKey = "olderwrongs"

// genTemperature keeps word and hint generation varied between rounds.
const genTemperature = 1

// ChatCompleter is the backend capability consumed by Gen. It is stateless
// and safe to share between concurrent sessions.
type ChatCompleter interface {
	ChatComplete(ctx context.Context, system string, payload any, requireJSON bool, temperature float64) (string, error)
}

// Gen generates words and hints with a chat-completion backend and the two
// prompt templates loaded at startup.
type Gen struct {
	backend    ChatCompleter
	wordPrompt string
	hintPrompt string
}

func NewGen(backend ChatCompleter, wordPrompt, hintPrompt string) *Gen {
	return &Gen{backend: backend, wordPrompt: wordPrompt, hintPrompt: hintPrompt}
}

// Generate implements Generator. The parse is strict: a backend payload
// without a usable word fails the call.
func (g *Gen) Generate(ctx context.Context, params any) (Word, error) {
	content, err := g.backend.ChatComplete(ctx, g.wordPrompt, params, true, genTemperature)
	if err != nil {
		return Word{}, err
	}
	return FromContent(ParseContent(content))
}

// Hint implements Generator. Shape problems never fail a hint round; only
// transport-level errors from the backend do.
func (g *Gen) Hint(ctx context.Context, props map[string]any, wrongs []Guess) (string, error) {
	payload := make(map[string]any, len(props)+1)
	for k, v := range props {
		payload[k] = v
	}
	if len(wrongs) > 0 {
		payload[historyKey] = wrongs
	}
	content, err := g.backend.ChatComplete(ctx, g.hintPrompt, payload, true, genTemperature)
	if err != nil {
		return "", err
	}
	return ParseContent(content).Hint(), nil
}
