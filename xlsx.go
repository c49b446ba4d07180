package agency

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetCustomers   = "Customers"
	SheetCollections = "Collections"
	SheetDeposits    = "Deposits"
)

// ExportWorkbook writes the customers, collections and deposits to w as an
// XLSX workbook with one sheet each.
func (l *Ledger) ExportWorkbook(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCustomers); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", SheetCustomers, err)
	}
	for _, name := range []string{SheetCollections, SheetDeposits} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("cannot create sheet %q: %w", name, err)
		}
	}

	customers := [][]any{{"Short code", "Name", "Phone", "Address", "Account number", "Email", "Created"}}
	for _, c := range l.customers {
		customers = append(customers, []any{c.ShortCode, c.Name, c.Phone, c.Address, c.AccountNumber, c.Email, c.CreatedAt.Format(time.DateTime)})
	}

	collections := [][]any{{"Receipt", "Short code", "Customer", "Amount", "Penalty", "Total", "Created"}}
	for _, c := range l.collections {
		var code, name string
		if cust, ok := l.Customer(c.CustomerID); ok {
			code, name = cust.ShortCode, cust.Name
		}
		collections = append(collections, []any{
			c.ReceiptNumber, code, name,
			c.Amount.InexactFloat64(), c.Penalty.InexactFloat64(), c.Total().InexactFloat64(),
			c.CreatedAt.Format(time.DateTime),
		})
	}

	deposits := [][]any{{"ID", "Amount", "Created"}}
	for _, d := range l.deposits {
		deposits = append(deposits, []any{d.ID, d.Amount.InexactFloat64(), d.CreatedAt.Format(time.DateTime)})
	}

	for sheet, rows := range map[string][][]any{
		SheetCustomers:   customers,
		SheetCollections: collections,
		SheetDeposits:    deposits,
	} {
		if err := writeSheet(f, sheet, rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}
