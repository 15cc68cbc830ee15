package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, RegionAmericas.IsValid())
	assert.False(t, Region("LATAM").IsValid())
	assert.True(t, CasePriorityInformational.IsValid())
	assert.False(t, CasePriority("Urgent").IsValid())
	assert.True(t, CaseStatusUnderReview.IsValid())
	assert.False(t, CaseStatus("Pending Resolution").IsValid())
}

func TestColumns_Order(t *testing.T) {
	require.Len(t, Columns, 18)
	assert.Equal(t, "Dat", Columns[0])
	assert.Equal(t, "Case status", Columns[7])
	assert.Equal(t, "Resolution time", Columns[17])
}

func TestFormatTimestamp_NoPadding(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 3, 7, 9, 5, 41, 0, time.UTC), "3/7/2026 9:05"},
		{time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "12/25/2025 0:00"},
		{time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), "1/31/2026 23:59"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.in))
		})
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	got, err := ParseTimestamp(FormatTimestamp(in), time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(in), "got %s", got)

	got, err = ParseTimestamp("12/25/2025 14:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC), got)
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("2026-03-07 09:05", time.UTC)
	assert.Error(t, err)
}

func TestParseTimestamp_OrdersChronologically(t *testing.T) {
	// "9/1/2025" sorts after "10/1/2025" as a string but is earlier in time.
	a, err := ParseTimestamp("9/1/2025 8:00", time.UTC)
	require.NoError(t, err)
	b, err := ParseTimestamp("10/1/2025 8:00", time.UTC)
	require.NoError(t, err)
	assert.True(t, a.Before(b))
}
