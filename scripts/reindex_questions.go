package main

import (
	"context"
	"log"

	"github.com/KeshavMowar711/AI-Interview-App/internal/config"
	"github.com/KeshavMowar711/AI-Interview-App/internal/repositories"
	"github.com/KeshavMowar711/AI-Interview-App/internal/services"
)

// Rebuilds the Qdrant question memory from the questions already stored in
// Postgres. Run after wiping the collection or pointing at a fresh Qdrant.
func main() {
	log.Println("🚀 Starting question reindex...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	memory, err := services.NewQuestionMemory(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := memory.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	interviewRepo := repositories.NewInterviewRepository(db)

	questions, err := interviewRepo.AllQuestions()
	if err != nil {
		log.Fatalf("❌ Failed to load questions: %v", err)
	}

	log.Printf("📋 Found %d questions to index\n", len(questions))

	ctx := context.Background()
	indexed := 0

	for _, q := range questions {
		embedding, err := geminiService.GenerateEmbedding(ctx, q.Question)
		if err != nil {
			log.Printf("⚠️  Failed to embed question for interview %s: %v\n", q.InterviewID, err)
			continue
		}

		if err := memory.RememberQuestion(ctx, q.InterviewID.String(), q.JobRole, q.Question, embedding); err != nil {
			log.Printf("⚠️  Failed to index question for interview %s: %v\n", q.InterviewID, err)
			continue
		}

		indexed++
	}

	log.Printf("✅ Reindex complete: %d/%d questions indexed\n", indexed, len(questions))
}
