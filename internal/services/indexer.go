package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Indexer pushes asked questions into the question memory off the request
// path. Grading responses never wait on embeddings.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(job IndexJob)
}

type IndexJob struct {
	InterviewID uuid.UUID
	JobRole     string
	Question    string
}

type indexer struct {
	geminiService GeminiService
	memory        QuestionMemory
	jobQueue      chan IndexJob
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewIndexer(geminiService GeminiService, memory QuestionMemory, concurrency int) Indexer {
	return &indexer{
		geminiService: geminiService,
		memory:        memory,
		jobQueue:      make(chan IndexJob, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting question indexer with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	log.Println("🛑 Stopping question indexer...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Question indexer stopped")
}

// Enqueue implements Indexer. A full queue drops the job; the memory is an
// optimization, not a record of truth.
func (w *indexer) Enqueue(job IndexJob) {
	select {
	case w.jobQueue <- job:
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, dropping job for interview %s\n", job.InterviewID)
	default:
		log.Printf("⚠️  Index queue full, dropping job for interview %s\n", job.InterviewID)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case job := <-w.jobQueue:
			if err := w.indexQuestion(ctx, job); err != nil {
				log.Printf("⚠️  Indexer #%d failed to index question for interview %s: %v\n", workerID, job.InterviewID, err)
			}
		}
	}
}

func (w *indexer) indexQuestion(ctx context.Context, job IndexJob) error {
	embedding, err := w.geminiService.GenerateEmbedding(ctx, job.Question)
	if err != nil {
		return err
	}

	return w.memory.RememberQuestion(ctx, job.InterviewID.String(), job.JobRole, job.Question, embedding)
}
