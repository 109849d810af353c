package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/purchasebook/purchasebook/internal/purchases"
)

// WriteEntriesCSV serialises exported purchase entries as CSV.
func WriteEntriesCSV(w io.Writer, entries []purchases.PurchaseEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"ID", "Supplier ID", "Invoice No", "Date", "Entry Date", "GST Rate",
		"Basic Value", "SGST", "CGST", "IGST", "Invoice Value", "TDS Value", "Narration", "Status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		narration := ""
		if e.Narration != nil {
			narration = *e.Narration
		}
		record := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.SupplierID, 10),
			e.InvoiceNo,
			e.Date,
			e.EntryDate,
			formatFloat(e.GSTRate),
			formatFloat(e.BasicValue),
			formatFloat(e.SGST),
			formatFloat(e.CGST),
			formatFloat(e.IGST),
			formatFloat(e.InvoiceValue),
			formatFloat(e.TDSValue),
			narration,
			e.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
