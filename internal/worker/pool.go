// Package worker implements the buffered worker pool that archives fetched
// match histories to ClickHouse. Archiving is strictly best-effort: it
// decouples report generation from analytics writes via
// - backpressure handling with load shedding
// - batch inserts for efficient ClickHouse writes
// - graceful shutdown with flush guarantees

package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Prometheus metrics
var (
	matchesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_archive_matches_enqueued_total",
		Help: "Total number of matches enqueued for archiving",
	})

	matchesArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_archive_matches_archived_total",
		Help: "Total number of matches written to ClickHouse",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_archive_matches_failed_total",
		Help: "Total number of matches that failed archiving",
	})

	matchesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_archive_matches_load_shed_total",
		Help: "Total number of matches dropped because the queue was full",
	})

	archiveQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scout_archive_queue_depth",
		Help: "Current depth of the archive queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_archive_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// Job is one match to archive, tagged with the team the report was about.
type Job struct {
	TeamID     string
	Match      models.Match
	EnqueuedAt time.Time
}

// PoolConfig configures the archive pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages the archive workers.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates an archive pool with sane defaults for zero config values.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 4096
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Archive pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the pool, flushing pending batches. The queue
// closes before the context cancels so workers drain everything enqueued.
func (p *Pool) Stop() {
	p.logger.Info("Stopping archive pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Archive pool stopped")
}

// Enqueue offers a match for archiving. Load-sheds instead of blocking when
// the queue is full; report generation must never wait on the archive.
func (p *Pool) Enqueue(teamID string, match models.Match) bool {
	job := Job{TeamID: teamID, Match: match, EnqueuedAt: time.Now()}

	// Protect against sending on a closed channel during shutdown.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue match (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		matchesEnqueued.Inc()
		return true
	default:
		matchesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.archiveBatch(batch); err != nil {
			p.logger.Errorw("Archive batch failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			matchesFailed.Add(float64(len(batch)))
		} else {
			matchesArchived.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// archiveBatch writes one batch of matches to ClickHouse.
func (p *Pool) archiveBatch(batch []Job) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO scout.match_archive (
			archived_at, team_id, match_id, series_id, start_time, map_name, raw_json
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		rawJSON, err := json.Marshal(job.Match)
		if err != nil {
			p.logger.Warnw("Failed to marshal match", "error", err, "match_id", job.Match.ID)
			continue
		}
		if err := chBatch.Append(
			job.EnqueuedAt,
			job.TeamID,
			matchUUID(job.Match.ID),
			job.Match.SeriesID,
			job.Match.StartTime,
			job.Match.MapName,
			string(rawJSON),
		); err != nil {
			p.logger.Warnw("Failed to append match to batch", "error", err, "match_id", job.Match.ID)
			continue
		}
	}

	return chBatch.Send()
}

// matchUUID parses a vendor match id, falling back to a deterministic UUID
// so re-archiving the same match produces the same key.
func matchUUID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(s))
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			archiveQueueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
