package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/casegen/internal/config"
	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/internal/events"
	"github.com/spec-kit/casegen/internal/export"
	"github.com/spec-kit/casegen/internal/observability"
	"github.com/spec-kit/casegen/internal/reference"
	"github.com/spec-kit/casegen/internal/sampler"
	"github.com/spec-kit/casegen/pkg/util"
)

const (
	sinkCSV  = "csv"
	sinkXLSX = "xlsx"
)

// Pipeline runs one generation: synthesize, summarize, export, report.
type Pipeline struct {
	cfg        config.Config
	tables     reference.Tables
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	out        io.Writer
	now        func() time.Time
	newRunID   func() uuid.UUID
}

// PipelineDependencies bundles collaborators for the pipeline.
type PipelineDependencies struct {
	Tables     reference.Tables
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Out        io.Writer
	Now        func() time.Time
}

// RunResult describes a finished run.
type RunResult struct {
	RunID         uuid.UUID
	Records       []domain.CaseRecord
	Summary       domain.Summary
	Misclassified Misclassified
	CSVPath       string
	XLSXPath      string
}

// NewPipeline constructs the pipeline.
func NewPipeline(cfg config.Config, deps PipelineDependencies) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		tables:     deps.Tables,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		out:        deps.Out,
		now:        deps.Now,
		newRunID:   uuid.New,
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.dispatcher == nil {
		p.dispatcher = events.NewInMemoryDispatcher()
	}
	return p
}

// Run executes the pipeline. The first error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	runID := p.newRunID()
	logger := p.logger.With(zap.String("run_id", runID.String()))
	gen := p.cfg.Generator

	synth, err := NewSynthesizer(p.tables, SynthesizerOptions{
		IDBase:             gen.IDBase,
		OutlierProbability: gen.OutlierProbability,
		Now:                p.now,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rng := sampler.NewSource(gen.Seed)
	records, err := synth.Generate(rng, gen.CaseCount)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		p.metrics.RecordGenerated(string(rec.Region), rec.Outlier)
	}
	logger.Info("cases generated",
		zap.Int("count", len(records)),
		zap.Int64("seed", gen.Seed),
		zap.Duration("duration", time.Since(start)))

	if err := p.publish(ctx, runID, events.EventDatasetGenerated, events.DatasetGeneratedPayload{
		Seed:    gen.Seed,
		Records: records,
	}); err != nil {
		return nil, err
	}

	summary := Summarize(records, p.cfg.Export.TopIssues)
	misclassified := FindMisclassified(rng, records)
	logger.Debug("severity/priority mismatches sampled",
		zap.Int("high_severity_minor", len(misclassified.HighSeverityMinor)),
		zap.Int("medium_severity_critical", len(misclassified.MediumSeverityCritical)))

	result := &RunResult{
		RunID:         runID,
		Records:       records,
		Summary:       summary,
		Misclassified: misclassified,
		CSVPath:       p.cfg.Export.CSVPath,
	}

	if err := export.WriteCSV(result.CSVPath, records); err != nil {
		p.metrics.RecordSinkFailure(sinkCSV)
		return nil, err
	}
	p.metrics.RecordSinkRows(sinkCSV, len(records))
	logger.Info("csv written", zap.String("path", result.CSVPath))

	if path := p.cfg.Export.XLSXPath; path != "" {
		if err := export.WriteXLSX(path, "Cases", records); err != nil {
			p.metrics.RecordSinkFailure(sinkXLSX)
			return nil, err
		}
		p.metrics.RecordSinkRows(sinkXLSX, len(records))
		result.XLSXPath = path
		logger.Info("workbook written", zap.String("path", path))
	}

	if err := p.publish(ctx, runID, events.EventDatasetExported, events.DatasetExportedPayload{
		CSVPath:  result.CSVPath,
		XLSXPath: result.XLSXPath,
		Summary:  summary,
	}); err != nil {
		return nil, err
	}

	reporter := export.NewReporter(p.out, p.cfg.Export.SampleRows, p.cfg.Export.TopIssues)
	if err := reporter.Print(summary, records, result.CSVPath); err != nil {
		return nil, util.NewIOError("report output", err)
	}

	logger.Info("run complete", p.metrics.Fields()...)
	return result, nil
}

func (p *Pipeline) publish(ctx context.Context, runID uuid.UUID, eventType events.EventType, payload interface{}) error {
	return p.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		RunID:     runID.String(),
		Timestamp: p.now(),
		Payload:   payload,
	})
}
