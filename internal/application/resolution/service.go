package resolution

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "github.com/skubridge/backend/internal/domain/resolution"
	"github.com/skubridge/backend/internal/domain/shared"
)

// Config tunes batch resolution behavior
type Config struct {
	// FuzzyThreshold overrides the default fuzzy acceptance threshold
	// when > 0
	FuzzyThreshold float64

	// BatchWorkers is the worker pool width for ResolveBatch; values
	// below 1 fall back to 4
	BatchWorkers int

	// MemoEnabled turns on per-batch memoization of repeated
	// (channel, sku, name) lines
	MemoEnabled bool

	// ReviewQueueSize caps the in-memory manual-review queue; values
	// below 1 fall back to 1000
	ReviewQueueSize int

	// TopUnmapped limits the ranked unmapped-SKU list in batch
	// reports; values below 1 fall back to 20
	TopUnmapped int
}

const (
	defaultBatchWorkers    = 4
	defaultReviewQueueSize = 1000
	defaultTopUnmapped     = 20
)

// ResolutionService exposes the resolution engine to the API layer. It
// owns snapshot loading, batch fan-out and the manual-review queue.
type ResolutionService struct {
	source   ReferenceSource
	resolver *domain.Resolver
	cfg      Config
	logger   *zap.Logger
	queue    *ReviewQueue
}

// NewResolutionService creates a new ResolutionService
func NewResolutionService(source ReferenceSource, cfg Config, logger *zap.Logger) *ResolutionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = defaultBatchWorkers
	}
	if cfg.ReviewQueueSize < 1 {
		cfg.ReviewQueueSize = defaultReviewQueueSize
	}
	if cfg.TopUnmapped < 1 {
		cfg.TopUnmapped = defaultTopUnmapped
	}
	return &ResolutionService{
		source:   source,
		resolver: domain.NewResolver(domain.Options{FuzzyThreshold: cfg.FuzzyThreshold}),
		cfg:      cfg,
		logger:   logger,
		queue:    NewReviewQueue(cfg.ReviewQueueSize),
	}
}

// Resolve resolves a single record against a fresh snapshot
func (s *ResolutionService) Resolve(ctx context.Context, req ResolveRequest) (*domain.ResolutionResult, error) {
	data, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := BuildSnapshot(data)
	s.logSnapshotWarnings(snap)

	result, err := s.resolver.Resolve(req.ToRecord(), snap)
	if err != nil {
		return nil, err
	}
	if result.NeedsManualReview {
		s.queue.Push(result)
	}
	return result, nil
}

// ResolveBatch resolves many records concurrently against one shared
// snapshot. Output order matches input order. Per-record failures are
// collected, never abort the batch; only snapshot loading and context
// cancellation abort.
func (s *ResolutionService) ResolveBatch(ctx context.Context, req BatchResolveRequest) (*BatchResolveResponse, error) {
	data, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := BuildSnapshot(data)

	records := make([]domain.RawChannelRecord, len(req.Records))
	for i, r := range req.Records {
		records[i] = r.ToRecord()
	}

	outcomes, err := s.resolveAll(ctx, records, snap)
	if err != nil {
		return nil, err
	}

	resp := &BatchResolveResponse{
		Results:  make([]*domain.ResolutionResult, len(outcomes)),
		Report:   domain.Aggregate(outcomes, s.cfg.TopUnmapped),
		Warnings: snap.Warnings(),
	}
	for i, o := range outcomes {
		resp.Results[i] = o.Result
		if o.Err != nil {
			resp.Errors = append(resp.Errors, RecordError{
				Index:   i,
				RawSKU:  o.Record.RawSKU,
				Code:    o.Err.Code,
				Message: o.Err.Message,
			})
			continue
		}
		if o.Result.NeedsManualReview {
			s.queue.Push(o.Result)
		}
	}

	s.logger.Info("batch resolved",
		zap.Int("records", len(records)),
		zap.Int64("errors", resp.Report.ErrorRecords),
		zap.Int64("review_queue", resp.Report.ReviewQueue),
		zap.Int("workers", s.cfg.BatchWorkers))

	return resp, nil
}

// resolveAll fans records out to a bounded worker pool. A memo cache
// collapses repeated identical lines: the first worker to finish a key
// publishes its result and later occurrences rescale it by quantity.
func (s *ResolutionService) resolveAll(ctx context.Context, records []domain.RawChannelRecord, snap *domain.Snapshot) ([]domain.Outcome, error) {
	outcomes := make([]domain.Outcome, len(records))

	var memo sync.Map // memo key -> *domain.ResolutionResult

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.cfg.BatchWorkers
	if workers > len(records) {
		workers = len(records)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = s.resolveOne(records[idx], snap, &memo)
			}
		}()
	}

	var canceled error
dispatch:
	for i := range records {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if canceled != nil {
		return nil, canceled
	}
	return outcomes, nil
}

func (s *ResolutionService) resolveOne(record domain.RawChannelRecord, snap *domain.Snapshot, memo *sync.Map) domain.Outcome {
	if s.cfg.MemoEnabled {
		if cached, ok := memo.Load(record.MemoKey()); ok {
			return domain.Outcome{
				Record: record,
				Result: domain.RescaleForQuantity(cached.(*domain.ResolutionResult), record),
			}
		}
	}

	result, err := s.resolver.Resolve(record, snap)
	if err != nil {
		derr, ok := err.(*shared.DomainError)
		if !ok {
			derr = shared.NewDomainError("INTERNAL", err.Error())
		}
		return domain.Outcome{Record: record, Err: derr}
	}

	if s.cfg.MemoEnabled {
		memo.Store(record.MemoKey(), result)
	}
	return domain.Outcome{Record: record, Result: result}
}

// logSnapshotWarnings surfaces reference-data anomalies on the
// single-record path, where there is no batch response to carry them.
func (s *ResolutionService) logSnapshotWarnings(snap *domain.Snapshot) {
	for _, w := range snap.Warnings() {
		s.logger.Warn("reference data warning",
			zap.String("code", w.Code),
			zap.String("message", w.Message))
	}
}

// ReviewQueueItems lists the most recent manual-review entries, newest
// first, up to limit (<= 0 means all).
func (s *ResolutionService) ReviewQueueItems(limit int) []ReviewItem {
	return s.queue.Items(limit)
}

// InvalidateReferenceData drops any cached reference data so the next
// batch sees catalog changes immediately.
func (s *ResolutionService) InvalidateReferenceData(ctx context.Context) error {
	return s.source.Invalidate(ctx)
}
