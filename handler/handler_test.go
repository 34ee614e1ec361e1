package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lordvidex/errs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekulture/taboo-server/game"
	"github.com/kodekulture/taboo-server/game/word"
	"github.com/kodekulture/taboo-server/service"
)

type fakeGen struct {
	word    word.Word
	wordErr error
	hintErr error
	hints   int
}

func (f *fakeGen) Generate(context.Context, any) (word.Word, error) {
	return f.word, f.wordErr
}

func (f *fakeGen) Hint(context.Context, map[string]any, []word.Guess) (string, error) {
	if f.hintErr != nil {
		return "", f.hintErr
	}
	f.hints++
	return fmt.Sprintf("hint %d", f.hints), nil
}

type nopCache struct{}

func (nopCache) Recent(context.Context, string) ([]string, error) { return nil, nil }
func (nopCache) Add(context.Context, string, string) error        { return nil }

func newTestHandler(gen *fakeGen) *Handler {
	srv := service.New(context.Background(), gen, nopCache{})
	return New(srv)
}

func soccer() word.Word {
	return word.Word{
		Answer: "soccer",
		Banned: []string{"ball"},
		Props:  map[string]any{"word": "Soccer", "banned": []any{"ball"}},
	}
}

func do(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func validConfig() map[string]string {
	return map[string]string{"topic": "sports", "difficulty": "easy", "language": "english"}
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})
	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_FullGame(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})

	rec := do(t, h, http.MethodPost, "/game", validConfig())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[game.Response](t, rec)
	assert.Nil(t, created.Word)
	assert.NotEmpty(t, created.ID)

	base := "/game/" + created.ID.String()
	for _, guess := range []string{"tennis", "golf"} {
		rec = do(t, h, http.MethodPost, base+"/hint", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		hint := decode[game.HintResponse](t, rec)
		assert.NotEmpty(t, hint.Hint)

		rec = do(t, h, http.MethodPost, base+"/guess", map[string]string{"guess": guess})
		require.Equal(t, http.StatusOK, rec.Code)
		result := decode[game.GuessResponse](t, rec)
		assert.False(t, result.Correct)
	}

	rec = do(t, h, http.MethodPost, base+"/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, base+"/guess", map[string]string{"guess": "Soccer"})
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[game.GuessResponse](t, rec)
	assert.True(t, result.Correct)
	require.NotNil(t, result.Word)
	assert.Equal(t, "soccer", *result.Word)

	// terminal session rejects another round with a client error
	rec = do(t, h, http.MethodPost, base+"/hint", nil)
	assert.GreaterOrEqual(t, rec.Code, 400)
	assert.Less(t, rec.Code, 500)
}

func TestHandler_CreateGame_InvalidConfig(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})
	rec := do(t, h, http.MethodPost, "/game", map[string]string{"topic": "sports"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateGame_MalformedResponse(t *testing.T) {
	gen := &fakeGen{wordErr: errs.B().Code(errs.InvalidArgument).Msg("invalid taboo word response format").Err()}
	h := newTestHandler(gen)
	rec := do(t, h, http.MethodPost, "/game", validConfig())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateGame_BackendDown(t *testing.T) {
	gen := &fakeGen{wordErr: errs.B().Code(errs.Unavailable).Msg("backend request failed").Err()}
	h := newTestHandler(gen)
	rec := do(t, h, http.MethodPost, "/game", validConfig())
	assert.GreaterOrEqual(t, rec.Code, 500, "backend failure is a server-class error")
}

func TestHandler_SessionNotFound(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})
	rec := do(t, h, http.MethodPost, "/game/7b80ff29-4a9d-4fb2-8b62-f9dd2fa63737/hint", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_InvalidSessionID(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})
	rec := do(t, h, http.MethodPost, "/game/not-a-uuid/hint", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Hints_Stateless(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})
	rec := do(t, h, http.MethodPost, "/hints", map[string]any{
		"props": map[string]any{"word": "soccer", "banned": []string{"ball"}},
		"previous_guesses": []map[string]string{
			{"predict": "tennis", "sentence": "you kick it"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	hint := decode[game.HintResponse](t, rec)
	assert.Equal(t, "hint 1", hint.Hint)
}

func TestHandler_Hints_InvalidBody(t *testing.T) {
	h := newTestHandler(&fakeGen{word: soccer()})

	// missing props entirely
	rec := do(t, h, http.MethodPost, "/hints", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// history entry missing required keys, rejected before any backend call
	gen := &fakeGen{hintErr: errs.B().Code(errs.Unavailable).Msg("must not be called").Err()}
	h = newTestHandler(gen)
	rec = do(t, h, http.MethodPost, "/hints", map[string]any{
		"props":            map[string]any{"word": "soccer"},
		"previous_guesses": []map[string]string{{"predict": "tennis"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
