package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/casegen/internal/events"
	"github.com/spec-kit/casegen/internal/observability"
	"github.com/spec-kit/casegen/internal/repository"
)

const (
	sinkPostgres = "postgres"
	sinkRedis    = "redis"
)

// SinkService forwards pipeline events to the optional external sinks.
type SinkService struct {
	dispatcher events.Dispatcher
	cases      repository.CaseRepository
	summaries  repository.SummaryCache
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// SinkDependencies bundles the sinks; nil members are skipped.
type SinkDependencies struct {
	Dispatcher events.Dispatcher
	CaseRepo   repository.CaseRepository
	Summaries  repository.SummaryCache
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewSinkService creates the service.
func NewSinkService(deps SinkDependencies) *SinkService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SinkService{
		dispatcher: deps.Dispatcher,
		cases:      deps.CaseRepo,
		summaries:  deps.Summaries,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *SinkService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventDatasetGenerated, s.handleDatasetGenerated)
	s.dispatcher.Subscribe(events.EventDatasetExported, s.handleDatasetExported)
}

func (s *SinkService) handleDatasetGenerated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DatasetGeneratedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	s.logger.Debug("DatasetGenerated", zap.String("run_id", event.RunID), zap.Int("records", len(payload.Records)))
	if s.cases == nil {
		return nil
	}

	runID, err := uuid.Parse(event.RunID)
	if err != nil {
		return fmt.Errorf("parse run id: %w", err)
	}
	copied, err := s.cases.InsertBatch(ctx, runID, payload.Records)
	if err != nil {
		s.metrics.RecordSinkFailure(sinkPostgres)
		return err
	}
	s.metrics.RecordSinkRows(sinkPostgres, int(copied))
	s.logger.Info("cases persisted", zap.String("run_id", event.RunID), zap.Int64("rows", copied))

	stored, err := s.cases.CountByRun(ctx, runID)
	switch {
	case err != nil:
		s.logger.Warn("case count read-back failed", zap.String("run_id", event.RunID), zap.Error(err))
	case stored != int64(len(payload.Records)):
		s.logger.Warn("case count mismatch",
			zap.String("run_id", event.RunID),
			zap.Int("generated", len(payload.Records)),
			zap.Int64("stored", stored))
	}
	return nil
}

func (s *SinkService) handleDatasetExported(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DatasetExportedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	s.logger.Debug("DatasetExported", zap.String("run_id", event.RunID), zap.String("csv_path", payload.CSVPath))
	if s.summaries == nil {
		return nil
	}

	runID, err := uuid.Parse(event.RunID)
	if err != nil {
		return fmt.Errorf("parse run id: %w", err)
	}
	if err := s.summaries.Store(ctx, runID, payload.Summary); err != nil {
		s.metrics.RecordSinkFailure(sinkRedis)
		return err
	}
	s.metrics.RecordSinkRows(sinkRedis, 1)
	s.logger.Info("summary cached", zap.String("key", repository.SummaryKey(runID)))

	latest, err := s.summaries.Latest(ctx)
	switch {
	case err != nil:
		s.logger.Warn("summary read-back failed", zap.String("run_id", event.RunID), zap.Error(err))
	case latest.RunID != event.RunID:
		s.logger.Warn("latest summary belongs to another run",
			zap.String("run_id", event.RunID),
			zap.String("latest_run_id", latest.RunID))
	}
	return nil
}
