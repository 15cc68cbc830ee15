package service

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/internal/sampler"
)

const (
	highMinorCap      = 50
	mediumCriticalCap = 80
)

// Summarize aggregates records. Creation times are read back from their
// exported M/D/YYYY H:MM form so the range matches the file contents.
func Summarize(records []domain.CaseRecord, topIssues int) domain.Summary {
	summary := domain.Summary{Total: len(records)}

	regions := map[string]int{}
	priorities := map[string]int{}
	statuses := map[string]int{}
	issues := map[string]int{}
	byRegion := map[domain.Region][]float64{}
	type groupKey struct {
		region   domain.Region
		priority domain.CasePriority
	}
	byGroup := map[groupKey][]float64{}

	for _, rec := range records {
		regions[string(rec.Region)]++
		priorities[string(rec.Priority)]++
		statuses[string(rec.CaseStatus)]++
		issues[rec.ReportedIssue]++

		days := float64(rec.ResolutionTimeDays)
		byRegion[rec.Region] = append(byRegion[rec.Region], days)
		key := groupKey{rec.Region, rec.Priority}
		byGroup[key] = append(byGroup[key], days)

		created, err := domain.ParseTimestamp(domain.FormatTimestamp(rec.CreationTime), rec.CreationTime.Location())
		if err != nil {
			continue
		}
		if summary.EarliestCreate == nil || created.Before(*summary.EarliestCreate) {
			c := created
			summary.EarliestCreate = &c
		}
		if summary.LatestCreate == nil || created.After(*summary.LatestCreate) {
			c := created
			summary.LatestCreate = &c
		}
	}

	summary.Regions = sortedCounts(regions)
	summary.Priorities = sortedCounts(priorities)
	summary.CaseStatuses = sortedCounts(statuses)
	summary.TopIssues = sortedCounts(issues)
	if topIssues >= 0 && len(summary.TopIssues) > topIssues {
		summary.TopIssues = summary.TopIssues[:topIssues]
	}

	regionKeys := make([]domain.Region, 0, len(byRegion))
	for region := range byRegion {
		regionKeys = append(regionKeys, region)
	}
	slices.Sort(regionKeys)
	for _, region := range regionKeys {
		summary.RegionMeans = append(summary.RegionMeans, domain.RegionMean{
			Region: region,
			Mean:   round1(Mean(byRegion[region])),
		})
	}

	groupKeys := make([]groupKey, 0, len(byGroup))
	for key := range byGroup {
		groupKeys = append(groupKeys, key)
	}
	sort.Slice(groupKeys, func(i, j int) bool {
		if groupKeys[i].region != groupKeys[j].region {
			return groupKeys[i].region < groupKeys[j].region
		}
		return groupKeys[i].priority < groupKeys[j].priority
	})
	for _, key := range groupKeys {
		values := byGroup[key]
		summary.Groups = append(summary.Groups, domain.GroupStats{
			Region:   key.region,
			Priority: key.priority,
			Mean:     round1(Mean(values)),
			Median:   round1(Median(values)),
			StdDev:   round1(StdDev(values)),
			Count:    len(values),
		})
	}
	return summary
}

// Mean returns the arithmetic mean, or NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Median returns the middle value, averaging the two middle values for even
// lengths, or NaN for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the sample (n-1) standard deviation, or NaN when fewer than
// two values are present.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.RoundToEven(v*10) / 10
}

// sortedCounts orders by count descending, then value ascending.
func sortedCounts(counts map[string]int) []domain.Frequency {
	out := make([]domain.Frequency, 0, len(counts))
	for value, count := range counts {
		out = append(out, domain.Frequency{Value: value, Count: count})
	}
	slices.SortFunc(out, func(a, b domain.Frequency) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Value, b.Value)
	})
	return out
}

// Misclassified holds row indexes whose severity and priority disagree.
type Misclassified struct {
	HighSeverityMinor      []int
	MediumSeverityCritical []int
}

// FindMisclassified samples, without replacement, up to 50 rows with a High
// severity on a Minor priority and up to 80 rows with a Medium severity on a
// Critical priority. The result is diagnostic only and never exported.
func FindMisclassified(rng *rand.Rand, records []domain.CaseRecord) Misclassified {
	var highMinor, mediumCritical []int
	for i, rec := range records {
		switch {
		case strings.Contains(rec.Severity, "High") && rec.Priority == domain.CasePriorityMinor:
			highMinor = append(highMinor, i)
		case strings.Contains(rec.Severity, "Medium") && rec.Priority == domain.CasePriorityCritical:
			mediumCritical = append(mediumCritical, i)
		}
	}

	var out Misclassified
	if len(highMinor) > 0 {
		out.HighSeverityMinor = sampler.SampleWithoutReplacement(rng, highMinor, highMinorCap)
	}
	if len(mediumCritical) > 0 {
		out.MediumSeverityCritical = sampler.SampleWithoutReplacement(rng, mediumCritical, mediumCriticalCap)
	}
	return out
}
