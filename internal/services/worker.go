package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitai/backend/internal/models"
)

// judgmentStore is the slice of the application repository the worker
// needs.
type judgmentStore interface {
	FindByID(id uuid.UUID) (*models.Application, error)
	FindMissingJudgments(limit int) ([]models.Application, error)
	UpdateJudgment(id uuid.UUID, judgment models.ResumeJudgment) error
}

// JudgmentWorker re-runs the judgment pipeline for stored applications:
// operator-triggered re-analysis, plus a poller that backfills
// applications interrupted before their first judgment was persisted.
type JudgmentWorker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(applicationID uuid.UUID)
}

type judgmentWorker struct {
	store        judgmentStore
	storage      StorageService
	extractor    ResumeExtractor
	judge        JudgeService
	queue        chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewJudgmentWorker(
	store judgmentStore,
	storage StorageService,
	extractor ResumeExtractor,
	judge JudgeService,
	concurrency int,
	pollInterval time.Duration,
) JudgmentWorker {
	return &judgmentWorker{
		store:        store,
		storage:      storage,
		extractor:    extractor,
		judge:        judge,
		queue:        make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements JudgmentWorker.
func (w *judgmentWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting judgment worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processQueue(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnjudged(ctx)
}

// Stop implements JudgmentWorker.
func (w *judgmentWorker) Stop() {
	log.Println("🛑 Stopping judgment worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Judgment worker stopped")
}

// Enqueue implements JudgmentWorker.
func (w *judgmentWorker) Enqueue(applicationID uuid.UUID) {
	select {
	case w.queue <- applicationID:
		log.Printf("📥 Application %s enqueued for judgment\n", applicationID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue %s\n", applicationID)
	}
}

func (w *judgmentWorker) processQueue(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Judgment worker #%d stopped\n", workerID)
			return
		case appID := <-w.queue:
			if err := w.evaluate(ctx, appID); err != nil {
				log.Printf("❌ Worker #%d failed to judge application %s: %v\n", workerID, appID, err)
			} else {
				log.Printf("✅ Worker #%d judged application %s\n", workerID, appID)
			}
		}
	}
}

func (w *judgmentWorker) pollUnjudged(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Judgment backfill poller stopped")
			return
		case <-ticker.C:
			apps, err := w.store.FindMissingJudgments(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unjudged applications: %v\n", err)
				continue
			}

			if len(apps) > 0 {
				log.Printf("📋 Found %d applications awaiting judgment\n", len(apps))
			}

			for _, app := range apps {
				w.Enqueue(app.ID)
			}
		}
	}
}

// evaluate runs the full pipeline for one stored application: resume
// bytes, text extraction, judgment, persisted result.
func (w *judgmentWorker) evaluate(ctx context.Context, appID uuid.UUID) error {
	app, err := w.store.FindByID(appID)
	if err != nil {
		return err
	}

	data, err := w.storage.ReadResume(app.ResumeURL)
	if err != nil {
		return err
	}

	resumeText := w.extractor.Extract(data)
	judgment := w.judge.Judge(ctx, resumeText, app.Job.FullDescription())

	return w.store.UpdateJudgment(app.ID, judgment)
}
