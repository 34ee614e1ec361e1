// Package service orchestrates game sessions: word generation, hint rounds
// and guess evaluation. One Service serves any number of concurrent
// sessions; the backend client it holds is stateless and shared.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"
	"github.com/rs/zerolog/log"

	"github.com/kodekulture/taboo-server/game"
	"github.com/kodekulture/taboo-server/game/word"
	"github.com/kodekulture/taboo-server/repository"
)

var ErrNoSession = errs.B().Code(errs.NotFound).Msg("game session not found").Err()

type Service struct {
	*hub
	gen   word.Generator
	cache repository.WordCache
}

func New(appCtx context.Context, gen word.Generator, cache repository.WordCache) *Service {
	return &Service{
		hub:   newHub(appCtx),
		gen:   gen,
		cache: cache,
	}
}

// wordParams is the user payload for word generation: the flat configuration
// fields, plus words the backend should not pick again.
type wordParams struct {
	game.Config
	Exclude []string `json:"exclude,omitempty"`
}

// NewGame generates a secret word for the configuration and registers a new
// isolated session. Word generation is stateless: it depends only on cfg
// (and the repeat guard), never on other sessions.
func (s *Service) NewGame(ctx context.Context, cfg game.Config) (game.Response, error) {
	recent, err := s.cache.Recent(ctx, cfg.Topic)
	if err != nil {
		// a cold cache only makes repeats possible, not the game unplayable
		log.Warn().Err(err).Msg("word cache unavailable")
		recent = nil
	}
	w, err := s.gen.Generate(ctx, wordParams{Config: cfg, Exclude: recent})
	if err != nil {
		return game.Response{}, err
	}
	sess := game.NewSession(cfg)
	if err = sess.Start(w); err != nil {
		return game.Response{}, err
	}
	if err = s.cache.Add(ctx, cfg.Topic, w.Answer); err != nil {
		log.Warn().Err(err).Msg("failed to record issued word")
	}
	s.SetSession(sess)
	log.Debug().Str("session", sess.ID.String()).Str("word", w.Answer).Msg("new game started")
	return game.ToResponse(sess.View()), nil
}

// Hint returns the hint for the session's current round, generating one from
// the backend when the round is fresh. Requesting the hint again before
// guessing replays it without using up an attempt.
func (s *Service) Hint(ctx context.Context, id uuid.UUID) (game.HintResponse, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return game.HintResponse{}, ErrNoSession
	}
	if hint, attempt, open := sess.CurrentHint(); open {
		return game.HintResponse{Hint: hint, Attempt: attempt, MaxAttempts: game.MaxAttempts}, nil
	}
	if sess.Status().Terminal() {
		return game.HintResponse{}, game.ErrTerminated
	}
	hint, err := s.gen.Hint(ctx, sess.Secret().Props, sess.Wrongs())
	if err != nil {
		return game.HintResponse{}, err
	}
	hint, attempt, err := sess.BeginRound(hint)
	if err != nil {
		return game.HintResponse{}, err
	}
	return game.HintResponse{Hint: hint, Attempt: attempt, MaxAttempts: game.MaxAttempts}, nil
}

// Guess evaluates one guess for the session's open round.
func (s *Service) Guess(_ context.Context, id uuid.UUID, guess string) (game.GuessResponse, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return game.GuessResponse{}, ErrNoSession
	}
	result, err := sess.Play(guess)
	if err != nil {
		return game.GuessResponse{}, err
	}
	return game.ToGuessResponse(result, sess.Secret()), nil
}

// Game returns the client view of a session.
func (s *Service) Game(id uuid.UUID) (game.Response, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return game.Response{}, ErrNoSession
	}
	return game.ToResponse(sess.View()), nil
}

// HintFor serves callers that hold the word props themselves and only need
// the next hint for their history. Nothing is stored server-side.
func (s *Service) HintFor(ctx context.Context, props map[string]any, wrongs []word.Guess) (string, error) {
	w, err := word.FromProps(props)
	if err != nil {
		return "", err
	}
	return s.gen.Hint(ctx, w.Props, wrongs)
}
