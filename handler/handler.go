// Package handler exposes the game over HTTP. It binds and validates
// requests, delegates to the service, and maps the error taxonomy to
// client/server statuses through resp.Error.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/req"
	"github.com/lordvidex/x/resp"

	"github.com/kodekulture/taboo-server/game"
	"github.com/kodekulture/taboo-server/game/word"
	"github.com/kodekulture/taboo-server/service"
)

type Handler struct {
	s      *http.Server
	router chi.Router
	srv    *service.Service
}

func New(srv *service.Service) *Handler {
	h := &Handler{
		router: chi.NewRouter(),
		srv:    srv,
	}
	h.setup()
	return h
}

func (h *Handler) Start(port string) error {
	h.s = &http.Server{Addr: ":" + port, Handler: h.router}
	return h.s.ListenAndServe()
}

func (h *Handler) Stop(ctx context.Context) error {
	return h.s.Shutdown(ctx)
}

// Router returns the configured routes, mainly for tests.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) setup() {
	r := h.router
	r.Use(recoverMiddleware, logMiddleware)

	r.Get("/health", h.health)
	r.Post("/game", h.createGame)
	r.Get("/game/{id}", h.getGame)
	r.Post("/game/{id}/hint", h.hint)
	r.Post("/game/{id}/guess", h.guess)
	r.Post("/hints", h.hints)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// createGame starts a new session. The response carries the session id and
// display props; the secret word stays on the server until the game ends.
func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var payload game.Config
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		resp.Error(w, err)
		return
	}
	result, err := h.srv.NewGame(r.Context(), payload)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, result)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		resp.Error(w, err)
		return
	}
	result, err := h.srv.Game(id)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, result)
}

// hint opens the session's next round (or replays the current one).
func (h *Handler) hint(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		resp.Error(w, err)
		return
	}
	result, err := h.srv.Hint(r.Context(), id)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, result)
}

type guessParams struct {
	Guess string `json:"guess" validate:"required"`
}

func (h *Handler) guess(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		resp.Error(w, err)
		return
	}
	var payload guessParams
	defer r.Body.Close()
	if err = req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		resp.Error(w, err)
		return
	}
	result, err := h.srv.Guess(r.Context(), id, payload.Guess)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, result)
}

type hintsParams struct {
	Props           map[string]any `json:"props" validate:"required"`
	PreviousGuesses []word.Guess   `json:"previous_guesses" validate:"omitempty,dive"`
}

// hints is the stateless variant: the caller holds the word props and the
// guess history, the server only talks to the backend.
func (h *Handler) hints(w http.ResponseWriter, r *http.Request) {
	var payload hintsParams
	defer r.Body.Close()
	if err := req.I.Will().Bind(r, &payload).Validate(payload).Err(); err != nil {
		resp.Error(w, err)
		return
	}
	hint, err := h.srv.HintFor(r.Context(), payload.Props, payload.PreviousGuesses)
	if err != nil {
		resp.Error(w, err)
		return
	}
	resp.JSON(w, game.HintResponse{Hint: hint})
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.B().Code(errs.InvalidArgument).Msg("invalid session id").Err()
	}
	return id, nil
}
