package export

import (
	"fmt"
	"io"

	"github.com/traveldesk/sales-engine/booking"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteXLSX serialises the reports as a single-sheet workbook with the
// standard column set.
func WriteXLSX(w io.Writer, reports []booking.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i := range reports {
		row := Row(&reports[i])
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
