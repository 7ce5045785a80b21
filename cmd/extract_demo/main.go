package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
)

func main() {
	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("AUTOATENDE_AI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	logger, _ := zap.NewDevelopment()
	extractor := ai.NewExtractor(provider, ai.ExtractorConfig{Timeout: 20 * time.Second}, logger, nil)

	userMessage := "Quero um Corolla prata até 95 mil, de 2020 pra frente, com teto solar"
	if len(os.Args) > 1 {
		userMessage = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("Customer: %s\n", userMessage)

	spec, err := extractor.Extract(ctx, "Loja Demo", userMessage)
	if err != nil {
		var extErr *ai.ExtractionError
		if errors.As(err, &extErr) && extErr.Raw != "" {
			fmt.Printf("Raw model output: %s\n", extErr.Raw)
		}
		log.Fatalf("Error extracting filters: %v", err)
	}

	out, _ := json.MarshalIndent(spec, "", "  ")
	fmt.Printf("Intent: %q\n", spec.Intent)
	fmt.Printf("Filters: %s\n", out)
}
