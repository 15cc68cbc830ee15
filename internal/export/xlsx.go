package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/casegen/internal/domain"
	"github.com/spec-kit/casegen/pkg/util"
)

const (
	defaultSheet  = "Sheet1"
	xlsxColWidth  = 18
	idColumn      = 0
	resolutionCol = 17
)

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
// Dat and Resolution time are stored as numbers.
func WriteXLSX(path, sheetName string, records []domain.CaseRecord) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	if sheetName == "" {
		sheetName = "Cases"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := fillWorkbook(f, sheetName, records); err != nil {
		return util.NewIOError(path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return util.NewIOError(path, err)
	}
	return nil
}

func fillWorkbook(f *excelize.File, sheetName string, records []domain.CaseRecord) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]interface{}, len(domain.Columns))
	for i, name := range domain.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(domain.Columns))
	if err != nil {
		return err
	}
	lastHeader := lastCol + "1"
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := Row(rec)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		row[idColumn] = rec.ID
		row[resolutionCol] = rec.ResolutionTimeDays
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write record %d: %w", rec.ID, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", lastCol, xlsxColWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if sheetName != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	return nil
}
