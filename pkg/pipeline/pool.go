package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Gyro1978/Dacoola-sub001/pkg/recordstore"
)

// WorkerStatus is a worker's current activity, mirroring the teacher's
// own idle/working health snapshot.
type WorkerStatus string

const (
	WorkerStatusIdle    WorkerStatus = "idle"
	WorkerStatusWorking WorkerStatus = "working"
)

// WorkerHealth is a point-in-time snapshot of one pool worker.
type WorkerHealth struct {
	ID                string
	Status            WorkerStatus
	CurrentArticleID  string
	RecordsProcessed  int
	LastActivity      time.Time
}

// WorkerPool runs many records concurrently through an Orchestrator,
// pulling article IDs off a shared channel so that WorkerCount goroutines
// stay busy regardless of how unevenly individual records' wall-clock
// time varies. Unlike the teacher's Worker, which stops the whole worker
// on session executor failure, a failed ProcessRecord call here never
// stops the pool: the Stage Runner has already absorbed the failure, and
// the worker just moves on to the next ID.
type WorkerPool struct {
	orchestrator *Orchestrator
	store        *recordstore.Store
	workerCount  int
	logger       *slog.Logger

	mu      sync.RWMutex
	health  map[string]*WorkerHealth
}

// NewWorkerPool constructs a pool of workerCount goroutines driving
// orchestrator. workerCount below 1 is treated as 1.
func NewWorkerPool(orchestrator *Orchestrator, store *recordstore.Store, workerCount int, logger *slog.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{
		orchestrator: orchestrator,
		store:        store,
		workerCount:  workerCount,
		logger:       logger,
		health:       make(map[string]*WorkerHealth, workerCount),
	}
}

// Run loads and processes every given article ID, distributing them
// across the pool's workers, and blocks until all have been processed or
// ctx is cancelled. It returns the first fatal error encountered loading
// the queue itself; per-record processing failures are never fatal.
func (p *WorkerPool) Run(ctx context.Context, ids []string) error {
	queue := make(chan string)
	group, gctx := errgroup.WithContext(ctx)

	for i := 0; i < p.workerCount; i++ {
		workerID := workerName(i)
		p.setHealth(workerID, WorkerHealth{ID: workerID, Status: WorkerStatusIdle, LastActivity: time.Now()})
		group.Go(func() error {
			return p.runWorker(gctx, workerID, queue)
		})
	}

	group.Go(func() error {
		defer close(queue)
		for _, id := range ids {
			select {
			case <-gctx.Done():
				return nil
			case queue <- id:
			}
		}
		return nil
	})

	return group.Wait()
}

func (p *WorkerPool) runWorker(ctx context.Context, workerID string, queue <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-queue:
			if !ok {
				return nil
			}
			p.processOne(ctx, workerID, id)
		}
	}
}

func (p *WorkerPool) processOne(ctx context.Context, workerID, articleID string) {
	p.setHealth(workerID, WorkerHealth{ID: workerID, Status: WorkerStatusWorking, CurrentArticleID: articleID, LastActivity: time.Now()})
	defer func() {
		p.mu.Lock()
		if h, ok := p.health[workerID]; ok {
			h.Status = WorkerStatusIdle
			h.CurrentArticleID = ""
			h.LastActivity = time.Now()
			h.RecordsProcessed++
		}
		p.mu.Unlock()
	}()

	rec, err := p.store.Load(articleID)
	if err != nil {
		p.logger.Error("failed to load record for processing", "worker_id", workerID, "article_id", articleID, "error", err)
		return
	}

	terminal := p.orchestrator.ProcessRecord(ctx, rec)
	p.logger.Info("record processed", "worker_id", workerID, "article_id", rec.ID, "terminal_status", terminal)
}

func (p *WorkerPool) setHealth(workerID string, h WorkerHealth) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health[workerID] = &h
}

// Health returns a snapshot of every worker's current status.
func (p *WorkerPool) Health() []WorkerHealth {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]WorkerHealth, 0, len(p.health))
	for _, h := range p.health {
		out = append(out, *h)
	}
	return out
}

func workerName(i int) string {
	return "worker-" + strconv.Itoa(i)
}
