// Package receipt prints collection receipts as PDF documents.
package receipt

import (
	"fmt"
	"io"
	"time"

	"github.com/etnz/agency"
	"github.com/jung-kurt/gofpdf/v2"
)

// Receipt gathers what is printed on a collection receipt.
type Receipt struct {
	Agent      agency.AgentProfile
	Customer   agency.Customer // zero if the customer was deleted
	Collection agency.Collection
	Currency   string
}

// For builds the receipt of one collection of l.
func For(l *agency.Ledger, collectionID string) (Receipt, error) {
	col, ok := l.Collection(collectionID)
	if !ok {
		return Receipt{}, fmt.Errorf("collection %q: %w", collectionID, agency.ErrNotFound)
	}
	cust, _ := l.Customer(col.CustomerID)
	return Receipt{
		Agent:      l.Profile(),
		Customer:   cust,
		Collection: col,
		Currency:   l.Settings().Currency,
	}, nil
}

// Render writes r as an A5 PDF to w.
//
// Amounts are printed with the currency code, core PDF fonts have no glyph
// for most currency symbols.
func Render(w io.Writer, r Receipt) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	title := "Collection Receipt"
	if r.Agent.Name != "" {
		title = r.Agent.Name + " - " + title
	}
	pdf.CellFormat(128, 9, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if r.Agent.AgencyNumber != "" {
		pdf.CellFormat(128, 5, "Agency no. "+r.Agent.AgencyNumber, "", 1, "C", false, 0, "")
	}
	if r.Agent.BranchAddress != "" {
		pdf.CellFormat(128, 5, r.Agent.BranchAddress, "", 1, "C", false, 0, "")
	}
	if r.Agent.MobileNumber != "" {
		pdf.CellFormat(128, 5, "Mobile "+r.Agent.MobileNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, label, "1", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(88, 7, value, "1", 1, "L", false, 0, "")
	}
	pdf.SetFillColor(240, 240, 240)

	col := r.Collection
	line("Receipt no.", col.ReceiptNumber)
	line("Date", col.CreatedAt.Format("02-Jan-2006 03:04 PM"))
	customer := r.Customer.Name
	if r.Customer.ShortCode != "" {
		customer = fmt.Sprintf("%s (#%s)", r.Customer.Name, r.Customer.ShortCode)
	}
	line("Customer", customer)
	line("Account no.", r.Customer.AccountNumber)
	line("Amount", agency.M(col.Amount, r.Currency).Plain())
	line("Penalty", agency.M(col.Penalty, r.Currency).Plain())
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(40, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(88, 8, agency.M(col.Total(), r.Currency).Plain(), "1", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(128, 5, fmt.Sprintf("Printed %s", time.Now().Format("02-Jan-2006")), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("cannot render receipt %q: %w", col.ReceiptNumber, err)
	}
	return nil
}
