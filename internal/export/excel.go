// Package export produces the flat tabular report of approved reviews.
package export

import (
	"fmt"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "ESG Summaries"

var headers = []interface{}{
	"File ID", "Company Name", "Filename", "Final Assessment", "Editor Notes", "Created At",
}

// ApprovedReviews renders the rows as an XLSX workbook.
func ApprovedReviews(rows []models.ApprovedReviewRow) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := workbook.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}

		values := []interface{}{
			row.FileID,
			stringOrEmpty(row.CompanyName),
			row.OriginalFilename,
			row.FinalText,
			stringOrEmpty(row.EditorNotes),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := workbook.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
