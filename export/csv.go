package export

import (
	"encoding/csv"
	"io"

	"github.com/traveldesk/sales-engine/booking"
)

// WriteCSV serialises the reports as CSV with the standard header row.
func WriteCSV(w io.Writer, reports []booking.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(Headers); err != nil {
		return err
	}
	for i := range reports {
		if err := writer.Write(Row(&reports[i])); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
