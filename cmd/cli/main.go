// Command cli plays a taboo game in the terminal against the same backend
// the server uses, one session per run.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	"github.com/joho/godotenv"

	"github.com/kodekulture/taboo-server/game"
	"github.com/kodekulture/taboo-server/game/word"
	"github.com/kodekulture/taboo-server/internal/config"
	"github.com/kodekulture/taboo-server/llm"
)

func main() {
	topic := flag.String("topic", "sports", "topic to pick the secret word from")
	difficulty := flag.String("difficulty", "easy", "difficulty of the secret word")
	language := flag.String("language", "english", "language of hints")
	flag.Parse()

	_ = godotenv.Load()
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
	cfg := game.Config{Topic: *topic, Difficulty: *difficulty, Language: *language}

	fmt.Println("Welcome to Taboo!")
	fmt.Println("Guess the secret word from the hints. The hints avoid certain")
	fmt.Printf("taboo terms. You have %d attempts.\n", game.MaxAttempts)

	if err := play(context.Background(), gen, cfg); err != nil {
		log.Fatalf("game error: %v", err)
	}
}

func play(ctx context.Context, gen word.Generator, cfg game.Config) error {
	secret, err := gen.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	sess := game.NewSession(cfg)
	if err = sess.Start(secret); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		hint, err := gen.Hint(ctx, sess.Secret().Props, sess.Wrongs())
		if err != nil {
			return err
		}
		hint, attempt, err := sess.BeginRound(hint)
		if err != nil {
			return err
		}
		fmt.Printf("\nHint #%d/%d: %s\n", attempt, game.MaxAttempts, formatHint(hint))

		fmt.Print("Enter your guess: ")
		if !scanner.Scan() {
			fmt.Println("\nGame terminated.")
			return scanner.Err()
		}
		result, err := sess.Play(scanner.Text())
		if err != nil {
			return err
		}
		switch result.Status {
		case game.Won:
			fmt.Printf("\nCongratulations! You guessed the word %q in %d attempts!\n", secret.Answer, result.Attempt)
			return nil
		case game.Lost:
			fmt.Printf("\nGame over! The word was %q\n", secret.Answer)
			return nil
		default:
			if result.Similarity >= 0.8 {
				fmt.Println("So close!")
			}
		}
	}
}

// formatHint cleans up backend hints for display: wrapping quotes removed,
// first letter capitalized, terminal punctuation ensured.
func formatHint(hint string) string {
	hint = strings.TrimSpace(hint)
	if len(hint) >= 2 && strings.HasPrefix(hint, `"`) && strings.HasSuffix(hint, `"`) {
		hint = hint[1 : len(hint)-1]
	}
	if hint == "" {
		return hint
	}
	runes := []rune(hint)
	runes[0] = unicode.ToUpper(runes[0])
	hint = string(runes)
	if !strings.HasSuffix(hint, ".") && !strings.HasSuffix(hint, "!") && !strings.HasSuffix(hint, "?") {
		hint += "."
	}
	return hint
}

func loadPrompt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("required prompt file %s not found: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}
