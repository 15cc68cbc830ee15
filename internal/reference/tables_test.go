package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/pkg/util"
)

func TestDefault_IsValid(t *testing.T) {
	tables := Default()
	require.NoError(t, tables.Validate())

	assert.Len(t, tables.States[domain.RegionAmericas], 7)
	assert.Len(t, tables.States[domain.RegionEMEA], 5)
	assert.Len(t, tables.States[domain.RegionAPAC], 5)
	assert.Len(t, tables.Queues[domain.RegionEMEA], 3)
	assert.Len(t, tables.Queues[domain.RegionAPAC], 2)
	assert.Len(t, tables.Queues[domain.RegionAmericas], 4)
	assert.Equal(t, []string{"High (Critical)"}, tables.Severities[domain.CasePriorityCritical])
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Sites[domain.RegionAPAC][0] = "mutated"
	a.RegionWeights[0] = 0

	b := Default()
	assert.Equal(t, "CGV Shanghai Fudi", b.Sites[domain.RegionAPAC][0])
	assert.InDelta(t, 0.35, b.RegionWeights[0], 1e-12)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"empty regions", func(t *Tables) { t.Regions = nil; t.RegionWeights = nil }},
		{"misaligned weights", func(t *Tables) { t.PriorityWeights = []float64{1} }},
		{"zero weight sum", func(t *Tables) { t.TypeWeights = []float64{0, 0, 0} }},
		{"negative weight", func(t *Tables) { t.StatusWeights = []float64{0.5, -0.1, 0.3, 0.3} }},
		{"empty categories", func(t *Tables) { t.Categories = []string{} }},
		{"empty site list", func(t *Tables) { t.Sites[domain.RegionEMEA] = nil }},
		{"missing queue mapping", func(t *Tables) { delete(t.Queues, domain.RegionAPAC) }},
		{"missing severities", func(t *Tables) { delete(t.Severities, domain.CasePriorityMinor) }},
		{"zero scale", func(t *Tables) {
			t.BaseTime[domain.CasePriorityMajor] = LogNormalParams{Mu: 3, Sigma: 0}
		}},
		{"missing multiplier", func(t *Tables) { delete(t.RegionalMultiplier, domain.RegionAmericas) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := Default()
			tt.mutate(&tables)

			err := tables.Validate()
			require.Error(t, err)
			assert.True(t, util.IsConfigurationError(err), "got %v", err)
		})
	}
}
