package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/pkg/util"
)

const dirPerm = 0o755

// Row renders a record in column order.
func Row(rec domain.CaseRecord) []string {
	return []string{
		strconv.FormatInt(rec.ID, 10),
		rec.SiteName,
		string(rec.Status),
		string(rec.Priority),
		rec.Severity,
		string(rec.ScreenStatus),
		rec.State,
		string(rec.CaseStatus),
		string(rec.Type),
		rec.Category,
		rec.ReportedIssue,
		rec.Resolution,
		rec.QueueName,
		string(rec.Region),
		rec.Market,
		domain.FormatTimestamp(rec.CreationTime),
		domain.FormatTimestamp(rec.LastUpdateTime),
		strconv.Itoa(rec.ResolutionTimeDays),
	}
}

// WriteCSV writes the header and one row per record to path, creating parent
// directories as needed. A failed write may leave a partial file behind.
func WriteCSV(path string, records []domain.CaseRecord) (err error) {
	if err := ensureParent(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return util.NewIOError(path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = util.NewIOError(path, cerr)
		}
	}()

	if err := EncodeCSV(file, records); err != nil {
		return util.NewIOError(path, err)
	}
	return nil
}

// EncodeCSV streams records as CSV to w.
func EncodeCSV(w io.Writer, records []domain.CaseRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(domain.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(Row(rec)); err != nil {
			return fmt.Errorf("write record %d: %w", rec.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadCSV loads a file produced by WriteCSV. Timestamps are interpreted in loc
// (time.Local when nil).
func ReadCSV(path string, loc *time.Location) ([]domain.CaseRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, util.NewIOError(path, err)
	}
	defer file.Close()

	records, err := DecodeCSV(file, loc)
	if err != nil {
		return nil, util.NewIOError(path, err)
	}
	return records, nil
}

// DecodeCSV parses CSV produced by EncodeCSV.
func DecodeCSV(r io.Reader, loc *time.Location) ([]domain.CaseRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(domain.Columns)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range domain.Columns {
		if header[i] != name {
			return nil, fmt.Errorf("column %d: got %q, want %q", i, header[i], name)
		}
	}

	records := []domain.CaseRecord{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, loc *time.Location) (domain.CaseRecord, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return domain.CaseRecord{}, fmt.Errorf("parse Dat: %w", err)
	}
	days, err := strconv.Atoi(row[17])
	if err != nil {
		return domain.CaseRecord{}, fmt.Errorf("parse Resolution time: %w", err)
	}
	created, err := domain.ParseTimestamp(row[15], loc)
	if err != nil {
		return domain.CaseRecord{}, err
	}
	updated, err := domain.ParseTimestamp(row[16], loc)
	if err != nil {
		return domain.CaseRecord{}, err
	}
	return domain.CaseRecord{
		ID:                 id,
		SiteName:           row[1],
		Status:             domain.CaseStatus(row[2]),
		Priority:           domain.CasePriority(row[3]),
		Severity:           row[4],
		ScreenStatus:       domain.ScreenStatus(row[5]),
		State:              row[6],
		CaseStatus:         domain.CaseStatus(row[7]),
		Type:               domain.RequestType(row[8]),
		Category:           row[9],
		ReportedIssue:      row[10],
		Resolution:         row[11],
		QueueName:          row[12],
		Region:             domain.Region(row[13]),
		Market:             row[14],
		CreationTime:       created,
		LastUpdateTime:     updated,
		ResolutionTimeDays: days,
		BaseResolutionDays: days,
	}, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return util.NewIOError(dir, err)
	}
	return nil
}
