package agency

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// this file contains the CSV import/export of the ledger entities.

// CustomerColumns is the header of the customer CSV format.
var CustomerColumns = []string{"shortCode", "name", "phone", "address", "accountNumber", "email"}

// CollectionColumns is the header of the collection CSV export.
var CollectionColumns = []string{"receiptNumber", "shortCode", "customerName", "amount", "penalty", "createdAt"}

// DepositColumns is the header of the deposit CSV export.
var DepositColumns = []string{"id", "amount", "createdAt"}

// ImportSummary counts the outcome of an import.
type ImportSummary struct {
	Added   int
	Skipped int
}

// ExportCustomers writes all customers to w in the customer CSV format.
func (l *Ledger) ExportCustomers(w io.Writer) error {
	rows := make([]Row, 0, len(l.customers))
	for _, c := range l.customers {
		rows = append(rows, Row{
			"shortCode":     c.ShortCode,
			"name":          c.Name,
			"phone":         c.Phone,
			"address":       c.Address,
			"accountNumber": c.AccountNumber,
			"email":         c.Email,
		})
	}
	return EncodeCSV(w, CustomerColumns, rows)
}

// ImportCustomers adds the customers read from r in the customer CSV format.
//
// Missing columns are empty, unknown columns are ignored, and so a row may
// have no name. Rows without a well formed short code get the next available
// one. Rows whose short code is already taken are skipped. The ledger is
// saved once at the end; an error wrapping ErrPersist comes with a valid
// summary.
func (l *Ledger) ImportCustomers(r io.Reader) (ImportSummary, error) {
	var sum ImportSummary
	rows, err := DecodeCSV(r)
	if err != nil {
		return sum, fmt.Errorf("cannot import customers: %w", err)
	}

	for i, row := range rows {
		in := CustomerInput{
			ShortCode:     strings.TrimSpace(row["shortCode"]),
			Name:          strings.TrimSpace(row["name"]),
			Phone:         strings.TrimSpace(row["phone"]),
			Address:       strings.TrimSpace(row["address"]),
			AccountNumber: strings.TrimSpace(row["accountNumber"]),
			Email:         strings.TrimSpace(row["email"]),
		}
		if !ValidShortCode(in.ShortCode) {
			in.ShortCode = ""
		}
		c, err := l.newCustomer(in)
		if err != nil {
			l.log.Debug("skip customer row", zap.Int("row", i+1), zap.String("shortCode", in.ShortCode), zap.Error(err))
			sum.Skipped++
			continue
		}
		l.customers = append(l.customers, c)
		sum.Added++
	}
	if sum.Added == 0 {
		return sum, nil
	}
	return sum, l.Save()
}

// ExportCollections writes all collections to w, with the short code and
// name of their customer when it still exists.
func (l *Ledger) ExportCollections(w io.Writer) error {
	rows := make([]Row, 0, len(l.collections))
	for _, c := range l.collections {
		row := Row{
			"receiptNumber": c.ReceiptNumber,
			"amount":        c.Amount.String(),
			"penalty":       c.Penalty.String(),
			"createdAt":     c.CreatedAt.Format(time.RFC3339),
		}
		if cust, ok := l.Customer(c.CustomerID); ok {
			row["shortCode"] = cust.ShortCode
			row["customerName"] = cust.Name
		}
		rows = append(rows, row)
	}
	return EncodeCSV(w, CollectionColumns, rows)
}

// ExportDeposits writes all deposits to w.
func (l *Ledger) ExportDeposits(w io.Writer) error {
	rows := make([]Row, 0, len(l.deposits))
	for _, d := range l.deposits {
		rows = append(rows, Row{
			"id":        d.ID,
			"amount":    d.Amount.String(),
			"createdAt": d.CreatedAt.Format(time.RFC3339),
		})
	}
	return EncodeCSV(w, DepositColumns, rows)
}
