package service

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/internal/reference"
	"github.com/spec-kit/casegen/internal/sampler"
	"github.com/spec-kit/casegen/pkg/util"
)

var fixedNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	opts := DefaultSynthesizerOptions()
	opts.Now = func() time.Time { return fixedNow }
	s, err := NewSynthesizer(reference.Default(), opts)
	require.NoError(t, err)
	return s
}

func generate(t *testing.T, seed int64, n int) []domain.CaseRecord {
	t.Helper()
	records, err := newTestSynthesizer(t).Generate(sampler.NewSource(seed), n)
	require.NoError(t, err)
	require.Len(t, records, n)
	return records
}

func TestGenerate_FieldDomains(t *testing.T) {
	tables := reference.Default()
	records := generate(t, 42, 5000)

	for i, rec := range records {
		assert.Equal(t, int64(1880000+i), rec.ID)
		assert.True(t, rec.Region.IsValid())
		assert.True(t, rec.Priority.IsValid())
		assert.True(t, rec.Status.IsValid())
		assert.Equal(t, rec.Status, rec.CaseStatus)
		assert.Contains(t, tables.Severities[rec.Priority], rec.Severity)
		assert.Contains(t, tables.Sites[rec.Region], rec.SiteName)
		assert.Contains(t, tables.Markets[rec.Region], rec.Market)
		assert.Contains(t, tables.States[rec.Region], rec.State)
		assert.Contains(t, tables.Queues[rec.Region], rec.QueueName)
		assert.Contains(t, tables.ScreenStatuses, rec.ScreenStatus)
		assert.Contains(t, tables.Types, rec.Type)
		assert.Contains(t, tables.Categories, rec.Category)
		assert.Contains(t, tables.ReportedIssues, rec.ReportedIssue)
		assert.Contains(t, tables.Resolutions, rec.Resolution)
	}
}

func TestGenerate_StateDependsOnRegion(t *testing.T) {
	usStates := []string{"CA", "NY", "NJ", "TX", "TN", "KY", "OH"}
	for _, rec := range generate(t, 7, 3000) {
		if rec.Region == domain.RegionAmericas {
			assert.Contains(t, usStates, rec.State)
		} else {
			assert.NotContains(t, usStates, rec.State)
		}
	}
}

func TestGenerate_TimeInvariants(t *testing.T) {
	earliest := fixedNow.AddDate(0, 0, -364)
	latest := fixedNow.AddDate(0, 0, -30)

	for _, rec := range generate(t, 42, 5000) {
		require.GreaterOrEqual(t, rec.ResolutionTimeDays, 0)
		assert.False(t, rec.LastUpdateTime.Before(rec.CreationTime))
		assert.Equal(t, rec.CreationTime.AddDate(0, 0, rec.ResolutionTimeDays), rec.LastUpdateTime)
		assert.False(t, rec.CreationTime.Before(earliest), "created %s", rec.CreationTime)
		assert.False(t, rec.CreationTime.After(latest), "created %s", rec.CreationTime)
	}
}

func TestGenerate_KeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2026, 10, 19, 14, 30, 0, 0, loc)

	opts := DefaultSynthesizerOptions()
	opts.Now = func() time.Time { return now }
	s, err := NewSynthesizer(reference.Default(), opts)
	require.NoError(t, err)

	records, err := s.Generate(sampler.NewSource(42), 400)
	require.NoError(t, err)
	for _, rec := range records {
		assert.Equal(t, 14, rec.CreationTime.Hour(), "created %s", rec.CreationTime)
		assert.Equal(t, 30, rec.CreationTime.Minute())
		assert.Equal(t, 14, rec.LastUpdateTime.Hour(), "updated %s", rec.LastUpdateTime)
		assert.True(t, strings.HasSuffix(domain.FormatTimestamp(rec.CreationTime), " 14:30"))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t, 42, 1200)
	b := generate(t, 42, 1200)
	assert.Equal(t, a, b)

	c := generate(t, 43, 1200)
	assert.NotEqual(t, a, c)
}

func TestGenerate_RegionDistribution(t *testing.T) {
	const n = 20000
	counts := map[domain.Region]int{}
	for _, rec := range generate(t, 42, n) {
		counts[rec.Region]++
	}
	assert.InDelta(t, 0.35, float64(counts[domain.RegionAPAC])/n, 0.02)
	assert.InDelta(t, 0.35, float64(counts[domain.RegionEMEA])/n, 0.02)
	assert.InDelta(t, 0.30, float64(counts[domain.RegionAmericas])/n, 0.02)
}

func TestGenerate_OutlierInjection(t *testing.T) {
	const n = 20000
	outliers := 0
	for _, rec := range generate(t, 42, n) {
		if !rec.Outlier {
			assert.Equal(t, rec.BaseResolutionDays, rec.ResolutionTimeDays)
			continue
		}
		outliers++
		if rec.BaseResolutionDays == 0 {
			assert.Zero(t, rec.ResolutionTimeDays)
			continue
		}
		factor := rec.ResolutionTimeDays / rec.BaseResolutionDays
		assert.Zero(t, rec.ResolutionTimeDays%rec.BaseResolutionDays)
		assert.GreaterOrEqual(t, factor, 3)
		assert.LessOrEqual(t, factor, 7)
	}
	assert.InDelta(t, 0.05, float64(outliers)/n, 0.01)
}

func TestGenerate_OutliersDisabled(t *testing.T) {
	opts := DefaultSynthesizerOptions()
	opts.OutlierProbability = 0
	s, err := NewSynthesizer(reference.Default(), opts)
	require.NoError(t, err)

	records, err := s.Generate(sampler.NewSource(1), 2000)
	require.NoError(t, err)
	for _, rec := range records {
		assert.False(t, rec.Outlier)
	}
}

func TestGenerate_Zero(t *testing.T) {
	records := generate(t, 42, 0)
	assert.Empty(t, records)
}

func TestGenerate_NegativeCount(t *testing.T) {
	_, err := newTestSynthesizer(t).Generate(sampler.NewSource(1), -1)
	require.Error(t, err)
	assert.True(t, util.IsConfigurationError(err))
}

func TestNext_UsesGivenID(t *testing.T) {
	rec, err := newTestSynthesizer(t).Next(sampler.NewSource(3), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec.ID)
}

func TestNewSynthesizer_RejectsBadConfiguration(t *testing.T) {
	tables := reference.Default()
	tables.Queues[domain.RegionEMEA] = nil
	_, err := NewSynthesizer(tables, DefaultSynthesizerOptions())
	require.Error(t, err)
	assert.True(t, util.IsConfigurationError(err))

	opts := DefaultSynthesizerOptions()
	opts.OutlierProbability = 2
	_, err = NewSynthesizer(reference.Default(), opts)
	require.Error(t, err)
	assert.True(t, util.IsConfigurationError(err))
}

// Pinned output for seed 42 and 1200 records. Any change to the draw order or
// to the samplers shows up here.
func TestGenerate_ReferenceRun(t *testing.T) {
	records := generate(t, 42, 1200)

	regions := map[domain.Region]int{}
	priorities := map[domain.CasePriority]int{}
	outliers, totalDays := 0, 0
	for _, rec := range records {
		regions[rec.Region]++
		priorities[rec.Priority]++
		if rec.Outlier {
			outliers++
		}
		totalDays += rec.ResolutionTimeDays
	}

	assert.Equal(t, map[domain.Region]int{
		domain.RegionAPAC:     403,
		domain.RegionEMEA:     470,
		domain.RegionAmericas: 327,
	}, regions)
	assert.Equal(t, map[domain.CasePriority]int{
		domain.CasePriorityCritical:      109,
		domain.CasePriorityMajor:         593,
		domain.CasePriorityMinor:         370,
		domain.CasePriorityInformational: 128,
	}, priorities)
	assert.Equal(t, 60, outliers)
	assert.Equal(t, 617, totalDays)

	first := records[0]
	assert.Equal(t, domain.CaseRecord{
		ID:             1880000,
		SiteName:       "Dolby Headquarters 1",
		Status:         domain.CaseStatusSolving,
		Priority:       domain.CasePriorityMinor,
		Severity:       "Low (Minor)",
		ScreenStatus:   domain.ScreenStatusUp,
		State:          "NJ",
		CaseStatus:     domain.CaseStatusSolving,
		Type:           domain.RequestTypePhone,
		Category:       "Qalif",
		ReportedIssue:  "TPC Display Issue",
		Resolution:     "Firmware Updated",
		QueueName:      "3rd Party Issues",
		Region:         domain.RegionAmericas,
		Market:         "Market-CA",
		CreationTime:   time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC),
		LastUpdateTime: time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC),
	}, first)

	second := records[1]
	assert.Equal(t, "Cineworld Birmingham", second.SiteName)
	assert.Equal(t, domain.CaseStatusClosed, second.Status)
	assert.Equal(t, "Screen Shaker Vibration", second.ReportedIssue)
	assert.Equal(t, "5/3/2026 14:30", domain.FormatTimestamp(second.CreationTime))
}
