package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/kodekulture/taboo-server/game/word"
	"github.com/kodekulture/taboo-server/handler"
	"github.com/kodekulture/taboo-server/internal/config"
	"github.com/kodekulture/taboo-server/llm"
	"github.com/kodekulture/taboo-server/repository"
	"github.com/kodekulture/taboo-server/repository/badgr"
	rediscache "github.com/kodekulture/taboo-server/repository/redis"
	"github.com/kodekulture/taboo-server/service"
)

func main() {
	done := make(chan struct{})
	_ = godotenv.Load()

	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(config.GetOrDefault("LOG_LEVEL", "debug"))
	if err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// all three are mandatory; the backend cannot be reached without them
	vals, err := config.Require("API_KEY", "BASE_URL", "MODEL_NAME")
	if err != nil {
		log.Fatal(err)
	}
	apiKey, baseURL, model := vals[0], vals[1], vals[2]

	wordPrompt, err := loadPrompt(config.GetOrDefault("WORDGEN_PROMPT_FILE", "system_prompts/system_prompt_wordgen.txt"))
	if err != nil {
		log.Fatal(err)
	}
	hintPrompt, err := loadPrompt(config.GetOrDefault("HINTGEN_PROMPT_FILE", "system_prompts/system_prompt_hintgen.txt"))
	if err != nil {
		log.Fatal(err)
	}

	gen := word.NewGen(llm.New(baseURL, apiKey, model), wordPrompt, hintPrompt)

	cache, closeCache, err := getWordCache(appCtx)
	if err != nil {
		log.Fatal(err)
	}

	srv := service.New(appCtx, gen, cache)
	h := handler.New(srv)
	go shutdown(h, closeCache, done)
	port := config.GetOrDefault("PORT", "8080")
	log.Printf("server started on port: %s", port)
	if err = h.Start(port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	<-done
}

// loadPrompt reads an opaque prompt template. A missing file is fatal at
// startup, never a per-request error.
func loadPrompt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("required prompt file %s not found: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func getWordCache(ctx context.Context) (repository.WordCache, func() error, error) {
	if url := config.Get("REDIS_URL"); url != "" {
		r, err := rediscache.New(ctx, url, 0)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	}
	db, err := badger.Open(badger.DefaultOptions(config.GetOrDefault("BADGER_PATH", "/tmp/taboo-badger")))
	if err != nil {
		return nil, nil, err
	}
	return badgr.New(db, 0), db.Close, nil
}

func shutdown(h *handler.Handler, closeCache func() error, done chan<- struct{}) {
	// Wait for interrupt signal to gracefully shutdown the server
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sig
	log.Println("shutdown started")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := h.Stop(ctx); err != nil {
		log.Fatal(err)
	}
	if err := closeCache(); err != nil {
		log.Println(err)
	}
	log.Println("shutdown complete")
	close(done)
}
