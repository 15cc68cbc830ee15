package service

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/internal/reference"
	"github.com/spec-kit/casegen/internal/sampler"
	"github.com/spec-kit/casegen/pkg/util"
)

const (
	hoursPerDay         = 24
	minDaysAgo          = 30
	maxDaysAgo          = 364
	minOutlierFactor    = 3
	maxOutlierFactor    = 7
	defaultOutlierRatio = 0.05
)

// SynthesizerOptions tunes record synthesis.
type SynthesizerOptions struct {
	IDBase             int64
	OutlierProbability float64
	// Now returns the generation instant; defaults to time.Now.
	Now func() time.Time
}

// Synthesizer produces case records from reference tables.
type Synthesizer struct {
	tables     reference.Tables
	opts       SynthesizerOptions
	regions    *sampler.Weighted[domain.Region]
	statuses   *sampler.Weighted[domain.CaseStatus]
	priorities *sampler.Weighted[domain.CasePriority]
	screens    *sampler.Weighted[domain.ScreenStatus]
	types      *sampler.Weighted[domain.RequestType]
}

// DefaultSynthesizerOptions mirrors the built-in generator constants.
func DefaultSynthesizerOptions() SynthesizerOptions {
	return SynthesizerOptions{
		IDBase:             1880000,
		OutlierProbability: defaultOutlierRatio,
		Now:                time.Now,
	}
}

// NewSynthesizer validates tables and prepares the weighted samplers.
func NewSynthesizer(tables reference.Tables, opts SynthesizerOptions) (*Synthesizer, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if opts.OutlierProbability < 0 || opts.OutlierProbability > 1 || math.IsNaN(opts.OutlierProbability) {
		return nil, util.NewConfigurationError("outlier probability must be within [0, 1]",
			map[string]any{"outlier_probability": opts.OutlierProbability})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Synthesizer{tables: tables, opts: opts}
	var err error
	if s.regions, err = weighted(tables.Regions, tables.RegionWeights); err != nil {
		return nil, err
	}
	if s.statuses, err = weighted(tables.Statuses, tables.StatusWeights); err != nil {
		return nil, err
	}
	if s.priorities, err = weighted(tables.Priorities, tables.PriorityWeights); err != nil {
		return nil, err
	}
	if s.screens, err = weighted(tables.ScreenStatuses, tables.ScreenStatusWeights); err != nil {
		return nil, err
	}
	if s.types, err = weighted(tables.Types, tables.TypeWeights); err != nil {
		return nil, err
	}
	return s, nil
}

func weighted[T any](values []T, weights []float64) (*sampler.Weighted[T], error) {
	choices, err := sampler.Zip(values, weights)
	if err != nil {
		return nil, err
	}
	return sampler.NewWeighted(choices)
}

// Generate produces n records with sequential IDs starting at the ID base.
// The generation instant is read once so every record shares the same "now".
func (s *Synthesizer) Generate(rng *rand.Rand, n int) ([]domain.CaseRecord, error) {
	if n < 0 {
		return nil, util.NewConfigurationError("record count must not be negative", map[string]any{"n": n})
	}
	now := s.opts.Now()
	records := make([]domain.CaseRecord, 0, n)
	for i := 0; i < n; i++ {
		record, err := s.next(rng, s.opts.IDBase+int64(i), now)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Next produces a single record with the given ID.
func (s *Synthesizer) Next(rng *rand.Rand, id int64) (domain.CaseRecord, error) {
	return s.next(rng, id, s.opts.Now())
}

// next draws the fields in a fixed order; reordering the draws changes the
// dataset produced for a given seed.
func (s *Synthesizer) next(rng *rand.Rand, id int64, now time.Time) (domain.CaseRecord, error) {
	t := s.tables
	rec := domain.CaseRecord{ID: id}

	rec.Region = s.regions.Draw(rng)

	var err error
	if rec.SiteName, err = pick(rng, t.Sites[rec.Region], "sites", rec.Region); err != nil {
		return rec, err
	}
	if rec.Market, err = pick(rng, t.Markets[rec.Region], "markets", rec.Region); err != nil {
		return rec, err
	}

	rec.Status = s.statuses.Draw(rng)
	rec.CaseStatus = rec.Status
	rec.Priority = s.priorities.Draw(rng)
	if rec.Severity, err = pick(rng, t.Severities[rec.Priority], "severities", rec.Priority); err != nil {
		return rec, err
	}
	rec.ScreenStatus = s.screens.Draw(rng)
	if rec.State, err = pick(rng, t.States[rec.Region], "states", rec.Region); err != nil {
		return rec, err
	}

	rec.Type = s.types.Draw(rng)
	if rec.Category, err = pick(rng, t.Categories, "categories", ""); err != nil {
		return rec, err
	}
	if rec.ReportedIssue, err = pick(rng, t.ReportedIssues, "reported_issues", ""); err != nil {
		return rec, err
	}
	if rec.Resolution, err = pick(rng, t.Resolutions, "resolutions", ""); err != nil {
		return rec, err
	}
	if rec.QueueName, err = pick(rng, t.Queues[rec.Region], "queues", rec.Region); err != nil {
		return rec, err
	}

	params := t.BaseTime[rec.Priority]
	baseTime := sampler.LogNormal(rng, params.Mu, params.Sigma)
	days := int(math.Floor(baseTime * t.RegionalMultiplier[rec.Region] / hoursPerDay))
	if days < 0 {
		days = 0
	}
	rec.BaseResolutionDays = days
	if sampler.Bernoulli(rng, s.opts.OutlierProbability) {
		days *= sampler.IntRange(rng, minOutlierFactor, maxOutlierFactor)
		rec.Outlier = true
	}
	rec.ResolutionTimeDays = days

	// Calendar days keep the wall-clock time across daylight saving changes.
	daysAgo := sampler.IntRange(rng, minDaysAgo, maxDaysAgo)
	rec.CreationTime = now.AddDate(0, 0, -daysAgo)
	rec.LastUpdateTime = rec.CreationTime.AddDate(0, 0, rec.ResolutionTimeDays)
	return rec, nil
}

func pick[K ~string](rng *rand.Rand, values []string, table string, key K) (string, error) {
	v, err := sampler.Uniform(rng, values)
	if err != nil {
		return "", util.NewConfigurationError("empty candidate list",
			map[string]any{"table": table, "key": string(key)})
	}
	return v, nil
}
