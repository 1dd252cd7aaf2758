package services

import (
	"context"
	"log"

	"recruitai/backend/internal/config"
)

// JudgmentBackend is a hosted language-model provider capable of
// producing a judgment from a prompt.
type JudgmentBackend interface {
	Name() string
	Invoke(ctx context.Context, prompt string) (string, error)
}

// SelectJudgmentBackend picks the first provider with a configured
// credential: Groq first (free tier), Google Gemini second. Returns nil
// when neither is configured. Selection happens once at startup; a
// credential added later takes effect only after a restart.
func SelectJudgmentBackend(cfg *config.Config) JudgmentBackend {
	if cfg.AI.GroqAPIKey != "" {
		log.Println("✅ Judgment backend: Groq (" + groqModel + ")")
		return NewGroqBackend(cfg.AI.GroqAPIKey)
	}

	if cfg.AI.GoogleAPIKey != "" {
		gemini, err := NewGeminiService(cfg.AI.GoogleAPIKey)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Gemini backend: %v\n", err)
			return nil
		}
		log.Println("✅ Judgment backend: Google Gemini")
		return gemini
	}

	log.Println("⚠️  No judgment backend configured. Set GROQ_API_KEY or GOOGLE_API_KEY")
	return nil
}
