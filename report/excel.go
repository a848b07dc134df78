package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/odconnect/receive-tracking-order/models"
)

// WriteXLSX writes the journaled reports as a spreadsheet summary: one
// row per dispatched report.
func WriteXLSX(w io.Writer, logs []models.ReportLog) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Branch", "Date", "Tracking No", "Category", "Note",
		"Missing Items", "Evidence", "Signer", "Role", "Submitted At"}
	for i, h := range headers {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef, h); err != nil {
			return err
		}
	}

	for row, l := range logs {
		values := []any{l.Branch, l.ReportDate, l.TrackingNo, l.Category, l.Note,
			l.MissingItems, l.EvidenceCount, l.SignerName, l.SignerRole,
			l.CreatedAt.Format("02/01/2006 15:04")}
		for col, v := range values {
			cellRef, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cellRef, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
