package domain

import "time"

// Frequency is one row of a value-count table.
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// RegionMean is the mean resolution time of one region.
type RegionMean struct {
	Region Region  `json:"region"`
	Mean   float64 `json:"mean"`
}

// GroupStats describes resolution time within one (region, priority) group.
type GroupStats struct {
	Region   Region       `json:"region"`
	Priority CasePriority `json:"priority"`
	Mean     float64      `json:"mean"`
	Median   float64      `json:"median"`
	StdDev   float64      `json:"std"`
	Count    int          `json:"count"`
}

// Summary holds the descriptive aggregates of a generated dataset.
// Float fields are rounded to one decimal; NaN marks an undefined statistic.
type Summary struct {
	Total          int          `json:"total"`
	EarliestCreate *time.Time   `json:"earliest_creation,omitempty"`
	LatestCreate   *time.Time   `json:"latest_creation,omitempty"`
	Regions        []Frequency  `json:"regions"`
	Priorities     []Frequency  `json:"priorities"`
	CaseStatuses   []Frequency  `json:"case_statuses"`
	TopIssues      []Frequency  `json:"top_issues"`
	RegionMeans    []RegionMean `json:"region_means"`
	Groups         []GroupStats `json:"groups"`
}
