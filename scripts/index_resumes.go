package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"recruitai/backend/internal/config"
	"recruitai/backend/internal/repositories"
	"recruitai/backend/internal/services"
)

// Builds the talent search index for one job: every applicant resume is
// chunked, embedded, and stored in qdrant, then the job description is
// used as a query to print the closest matching resume fragments.
func main() {
	jobIDFlag := flag.String("job", "", "job ID whose applications should be indexed")
	topK := flag.Int("top", 5, "number of matches to print after indexing")
	flag.Parse()

	if *jobIDFlag == "" {
		log.Fatal("❌ -job flag is required")
	}

	jobID, err := uuid.Parse(*jobIDFlag)
	if err != nil {
		log.Fatalf("❌ Invalid job ID: %v", err)
	}

	log.Println("🚀 Starting resume indexing...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	job, err := jobRepo.FindByID(jobID)
	if err != nil {
		log.Fatalf("❌ Failed to load job: %v", err)
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.AI.GoogleAPIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorIndex, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	extractor := services.NewResumeExtractor()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	apps, err := applicationRepo.FindByJob(jobID)
	if err != nil {
		log.Fatalf("❌ Failed to list applications: %v", err)
	}

	log.Printf("📄 Indexing %d applications for job %q\n", len(apps), job.Title)

	successCount := 0
	failCount := 0

	for _, app := range apps {
		log.Printf("\n📄 Processing application %s (%s)", app.ID, app.Applicant.FullName)

		data, err := storage.ReadResume(app.ResumeURL)
		if err != nil {
			log.Printf("   ⚠️  Resume unreadable, skipping: %v", err)
			failCount++
			continue
		}

		text := extractor.Extract(data)
		if services.IsExtractionError(text) {
			log.Printf("   ⚠️  Extraction failed, skipping: %s", text)
			failCount++
			continue
		}

		// Re-index from scratch so stale chunks don't linger
		if err := vectorIndex.RemoveApplication(ctx, app.ID.String()); err != nil {
			log.Printf("   ⚠️  Failed to clear previous chunks: %v", err)
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			if err := vectorIndex.IndexResumeChunk(ctx, app.ID.String(), app.Applicant.FullName, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Indexing Summary:")
	log.Printf("   ✅ Indexed: %d applications", successCount)
	log.Printf("   ❌ Skipped: %d applications", failCount)
	log.Println(strings.Repeat("=", 60))

	if successCount == 0 {
		log.Println("⚠️  Nothing indexed, skipping search.")
		os.Exit(1)
	}

	// Query the fresh index with the job description
	queryEmbedding, err := geminiService.GenerateEmbedding(ctx, job.FullDescription())
	if err != nil {
		log.Fatalf("❌ Failed to embed job description: %v", err)
	}

	matches, err := vectorIndex.FindTopMatches(ctx, queryEmbedding, *topK)
	if err != nil {
		log.Fatalf("❌ Failed to search index: %v", err)
	}

	log.Printf("\n🔍 Top %d resume fragments for %q:", len(matches), job.Title)
	for i, match := range matches {
		snippet := match.Text
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}
		log.Printf("   %d. %s (score %.3f): %s", i+1, match.ApplicantName, match.Score, snippet)
	}

	log.Println("✅ Resume indexing complete!")
}
