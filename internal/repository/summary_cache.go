package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/casegen/internal/domain"
)

const (
	summaryKeyPrefix = "casegen:summary:"
	latestSummaryKey = summaryKeyPrefix + "latest"
)

// SummaryCache stores run summaries for other tools to pick up.
type SummaryCache interface {
	Store(ctx context.Context, runID uuid.UUID, summary domain.Summary) error
	Latest(ctx context.Context) (*CachedSummary, error)
}

// CachedSummary is the JSON document written to Redis. Undefined statistics
// (NaN) are encoded as null.
type CachedSummary struct {
	RunID          string               `json:"run_id"`
	StoredAt       time.Time            `json:"stored_at"`
	Total          int                  `json:"total"`
	EarliestCreate *time.Time           `json:"earliest_creation,omitempty"`
	LatestCreate   *time.Time           `json:"latest_creation,omitempty"`
	Regions        []domain.Frequency   `json:"regions"`
	Priorities     []domain.Frequency   `json:"priorities"`
	CaseStatuses   []domain.Frequency   `json:"case_statuses"`
	TopIssues      []domain.Frequency   `json:"top_issues"`
	RegionMeans    []CachedRegionMean   `json:"region_means"`
	Groups         []CachedGroupSummary `json:"groups"`
}

// CachedRegionMean mirrors domain.RegionMean with a nullable mean.
type CachedRegionMean struct {
	Region domain.Region `json:"region"`
	Mean   *float64      `json:"mean"`
}

// CachedGroupSummary mirrors domain.GroupStats with nullable statistics.
type CachedGroupSummary struct {
	Region   domain.Region       `json:"region"`
	Priority domain.CasePriority `json:"priority"`
	Mean     *float64            `json:"mean"`
	Median   *float64            `json:"median"`
	StdDev   *float64            `json:"std"`
	Count    int                 `json:"count"`
}

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSummaryCache instantiates the Redis-backed cache. ttl of zero keeps keys forever.
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &summaryCache{client: client, ttl: ttl, now: time.Now}
}

// SummaryKey returns the Redis key holding the summary of runID.
func SummaryKey(runID uuid.UUID) string {
	return summaryKeyPrefix + runID.String()
}

func (c *summaryCache) Store(ctx context.Context, runID uuid.UUID, summary domain.Summary) error {
	payload, err := EncodeSummary(runID, summary, c.now())
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, SummaryKey(runID), payload, c.ttl)
		pipe.Set(ctx, latestSummaryKey, payload, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store summary: %w", err)
	}
	return nil
}

func (c *summaryCache) Latest(ctx context.Context) (*CachedSummary, error) {
	raw, err := c.client.Get(ctx, latestSummaryKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load latest summary: %w", err)
	}
	var cached CachedSummary
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decode latest summary: %w", err)
	}
	return &cached, nil
}

// EncodeSummary renders summary as the cached JSON document.
func EncodeSummary(runID uuid.UUID, summary domain.Summary, storedAt time.Time) ([]byte, error) {
	cached := CachedSummary{
		RunID:          runID.String(),
		StoredAt:       storedAt.UTC(),
		Total:          summary.Total,
		EarliestCreate: summary.EarliestCreate,
		LatestCreate:   summary.LatestCreate,
		Regions:        summary.Regions,
		Priorities:     summary.Priorities,
		CaseStatuses:   summary.CaseStatuses,
		TopIssues:      summary.TopIssues,
	}
	for _, rm := range summary.RegionMeans {
		cached.RegionMeans = append(cached.RegionMeans, CachedRegionMean{Region: rm.Region, Mean: nullable(rm.Mean)})
	}
	for _, g := range summary.Groups {
		cached.Groups = append(cached.Groups, CachedGroupSummary{
			Region:   g.Region,
			Priority: g.Priority,
			Mean:     nullable(g.Mean),
			Median:   nullable(g.Median),
			StdDev:   nullable(g.StdDev),
			Count:    g.Count,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return data, nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
