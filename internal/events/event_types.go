package events

import (
	"time"

	"github.com/spec-kit/casegen/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDatasetGenerated EventType = "dataset_generated"
	EventDatasetExported  EventType = "dataset_exported"
)

// Event represents a pipeline event emitted during a run.
type Event struct {
	Type      EventType   `json:"type"`
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DatasetGeneratedPayload carries the synthesized records.
type DatasetGeneratedPayload struct {
	Seed    int64               `json:"seed"`
	Records []domain.CaseRecord `json:"-"`
}

// DatasetExportedPayload describes files written and the computed summary.
type DatasetExportedPayload struct {
	CSVPath  string         `json:"csv_path"`
	XLSXPath string         `json:"xlsx_path,omitempty"`
	Summary  domain.Summary `json:"summary"`
}
