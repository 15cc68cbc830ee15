package domain

import "time"

// Region is the geographic support region a case belongs to.
type Region string

const (
	RegionAPAC     Region = "APAC"
	RegionEMEA     Region = "EMEA"
	RegionAmericas Region = "Americas"
)

// IsValid reports whether r is a known region.
func (r Region) IsValid() bool {
	switch r {
	case RegionAPAC, RegionEMEA, RegionAmericas:
		return true
	}
	return false
}

// CaseStatus enumerates lifecycle states for cases.
type CaseStatus string

const (
	CaseStatusSolving     CaseStatus = "Solving"
	CaseStatusUnderReview CaseStatus = "Under Review"
	CaseStatusResolved    CaseStatus = "Resolved"
	CaseStatusClosed      CaseStatus = "Closed"
)

// IsValid reports whether s is a known case status.
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusSolving, CaseStatusUnderReview, CaseStatusResolved, CaseStatusClosed:
		return true
	}
	return false
}

// CasePriority enumerates SLA urgency.
type CasePriority string

const (
	CasePriorityCritical      CasePriority = "Critical"
	CasePriorityMajor         CasePriority = "Major"
	CasePriorityMinor         CasePriority = "Minor"
	CasePriorityInformational CasePriority = "Informational"
)

// IsValid reports whether p is a known priority.
func (p CasePriority) IsValid() bool {
	switch p {
	case CasePriorityCritical, CasePriorityMajor, CasePriorityMinor, CasePriorityInformational:
		return true
	}
	return false
}

// ScreenStatus is the reported state of the auditorium screen.
type ScreenStatus string

const (
	ScreenStatusUp            ScreenStatus = "UP"
	ScreenStatusDown          ScreenStatus = "DOWN"
	ScreenStatusPleaseSpecify ScreenStatus = "Please Specify"
)

// RequestType is the channel a case was opened through.
type RequestType string

const (
	RequestTypeEmail RequestType = "Email Request"
	RequestTypeWeb   RequestType = "Web Support"
	RequestTypePhone RequestType = "Phone Call"
)

// CaseRecord is one synthetic support case row.
type CaseRecord struct {
	ID                 int64
	SiteName           string
	Status             CaseStatus
	Priority           CasePriority
	Severity           string
	ScreenStatus       ScreenStatus
	State              string
	CaseStatus         CaseStatus
	Type               RequestType
	Category           string
	ReportedIssue      string
	Resolution         string
	QueueName          string
	Region             Region
	Market             string
	CreationTime       time.Time
	LastUpdateTime     time.Time
	ResolutionTimeDays int

	// Outlier is set when the resolution time was inflated; BaseResolutionDays
	// holds the value before inflation. Neither is exported.
	Outlier            bool
	BaseResolutionDays int
}

// Columns is the exported header, in output order.
var Columns = []string{
	"Dat",
	"Site Name",
	"Status",
	"Priority",
	"Severity",
	"Screen Status",
	"State",
	"Case status",
	"Type",
	"Category",
	"Reported Issue",
	"Resolution",
	"Queue Name",
	"Region",
	"Market",
	"Creation Time",
	"Last Update Time",
	"Resolution time",
}
