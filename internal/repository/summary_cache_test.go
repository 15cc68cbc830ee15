package repository

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/casegen/internal/domain"
)

func TestSummaryKey(t *testing.T) {
	id := uuid.MustParse("6f1c2d1e-8c7a-4c0e-9a55-0b6f0f3c1a2b")
	assert.Equal(t, "casegen:summary:6f1c2d1e-8c7a-4c0e-9a55-0b6f0f3c1a2b", SummaryKey(id))
}

func TestEncodeSummary_NaNBecomesNull(t *testing.T) {
	id := uuid.New()
	summary := domain.Summary{
		Total:   1,
		Regions: []domain.Frequency{{Value: "APAC", Count: 1}},
		RegionMeans: []domain.RegionMean{
			{Region: domain.RegionAPAC, Mean: 2.5},
		},
		Groups: []domain.GroupStats{
			{
				Region:   domain.RegionAPAC,
				Priority: domain.CasePriorityMajor,
				Mean:     2.5,
				Median:   2.5,
				StdDev:   math.NaN(),
				Count:    1,
			},
		},
	}
	storedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := EncodeSummary(id, summary, storedAt)
	require.NoError(t, err)

	var decoded CachedSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id.String(), decoded.RunID)
	assert.True(t, decoded.StoredAt.Equal(storedAt))
	assert.Equal(t, 1, decoded.Total)
	require.Len(t, decoded.Groups, 1)
	assert.Nil(t, decoded.Groups[0].StdDev)
	require.NotNil(t, decoded.Groups[0].Mean)
	assert.InDelta(t, 2.5, *decoded.Groups[0].Mean, 1e-9)
	require.Len(t, decoded.RegionMeans, 1)
	require.NotNil(t, decoded.RegionMeans[0].Mean)
}

func TestCaseRow_ColumnAlignment(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	rec := domain.CaseRecord{
		ID:                 1880000,
		Region:             domain.RegionEMEA,
		Priority:           domain.CasePriorityMinor,
		CreationTime:       created,
		LastUpdateTime:     created.Add(48 * time.Hour),
		ResolutionTimeDays: 2,
	}

	row := caseRow(pgtypeUUID(uuid.New()), rec)
	require.Len(t, row, len(caseColumns))
	assert.Equal(t, int64(1880000), row[1])
	assert.Equal(t, "EMEA", row[14])
	assert.Equal(t, int32(2), row[18])
}
