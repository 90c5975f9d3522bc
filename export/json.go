package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/traveldesk/sales-engine/booking"
)

// jsonReport is the full-record export shape. Unlike the tabular formats it
// carries every field, keyed the way the records are keyed in storage.
type jsonReport struct {
	ID                  string `json:"id"`
	BookingID           string `json:"bookingId"`
	UserID              string `json:"userId"`
	AgentName           string `json:"agentName"`
	Timestamp           string `json:"timestamp"`
	Region              string `json:"region"`
	BookingType         string `json:"bookingType"`
	Date                string `json:"date"`
	Source              string `json:"source"`
	CustomerName        string `json:"customerName"`
	CustomerNationality string `json:"customerNationality"`
	CustomerMobile      string `json:"customerMobile"`
	Service             string `json:"service"`
	Provider            string `json:"provider"`
	Destination         string `json:"destination"`
	CheckIn             string `json:"checkIn"`
	PaxNumber           string `json:"paxNumber"`
	Currency            string `json:"currency"`
	NetRate             string `json:"netRate"`
	SellingRate         string `json:"sellingRate"`
	PaymentMethod       string `json:"paymentMethod"`
	PaymentLink         string `json:"paymentLink"`
	Installment         string `json:"installment"`
	InstallmentPaid     string `json:"installmentPaid"`
	DueDate             string `json:"dueDate"`
	Remarks             string `json:"remarks"`
	BankFileName        string `json:"bankFileName,omitempty"`
	VoucherFileName     string `json:"voucherFileName,omitempty"`
	InvoiceFileName     string `json:"invoiceFileName,omitempty"`
	OriginalBookingID   string `json:"originalBookingId,omitempty"`
}

// WriteJSON serialises the reports as an indented JSON array of full records.
func WriteJSON(w io.Writer, reports []booking.Report) error {
	out := make([]jsonReport, len(reports))
	for i, r := range reports {
		out[i] = jsonReport{
			ID:                  string(r.ID),
			BookingID:           string(r.BookingID),
			UserID:              string(r.UserID),
			AgentName:           r.AgentName,
			Timestamp:           r.Timestamp.UTC().Format(time.RFC3339),
			Region:              r.Region,
			BookingType:         r.BookingType,
			Date:                r.Date,
			Source:              r.Source,
			CustomerName:        r.CustomerName,
			CustomerNationality: r.CustomerNationality,
			CustomerMobile:      r.CustomerMobile,
			Service:             r.Service,
			Provider:            r.Provider,
			Destination:         r.Destination,
			CheckIn:             r.CheckIn,
			PaxNumber:           r.PaxNumber,
			Currency:            r.Currency,
			NetRate:             r.NetRate,
			SellingRate:         r.SellingRate,
			PaymentMethod:       r.PaymentMethod,
			PaymentLink:         r.PaymentLink,
			Installment:         r.Installment,
			InstallmentPaid:     r.InstallmentPaid,
			DueDate:             r.DueDate,
			Remarks:             r.Remarks,
			BankFileName:        r.BankFileName,
			VoucherFileName:     r.VoucherFileName,
			InvoiceFileName:     r.InvoiceFileName,
			OriginalBookingID:   string(r.OriginalBookingID),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
