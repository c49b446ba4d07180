// Package renderer renders ledger views as markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/agency"
	md "github.com/nao1215/markdown"
)

// timeFormat is how creation times are displayed.
const timeFormat = "2006-01-02 15:04"

// Customers renders the customer list, with the total collected from each customer.
func Customers(l *agency.Ledger, customers []agency.Customer) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := l.Settings().Currency

	doc.H1(fmt.Sprintf("Customers (%d)", len(customers)))
	table := md.TableSet{
		Header: []string{"Code", "Name", "Phone", "Address", "Account", "Email", "Collected"},
		Rows:   [][]string{},
	}
	for _, c := range customers {
		table.Rows = append(table.Rows, []string{
			c.ShortCode,
			c.Name,
			c.Phone,
			c.Address,
			c.AccountNumber,
			c.Email,
			agency.M(l.CustomerTotal(c.ID), cur).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Collections renders a list of collections. Collections whose customer no
// longer exists show an empty customer.
func Collections(l *agency.Ledger, collections []agency.Collection) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := l.Settings().Currency

	doc.H1(fmt.Sprintf("Collections (%d)", len(collections)))
	table := md.TableSet{
		Header: []string{"Receipt", "Code", "Customer", "Amount", "Penalty", "Total", "Date", "ID"},
		Rows:   [][]string{},
	}
	total := agency.M(0, cur)
	for _, c := range collections {
		var code, name string
		if cust, ok := l.Customer(c.CustomerID); ok {
			code, name = cust.ShortCode, cust.Name
		}
		table.Rows = append(table.Rows, []string{
			c.ReceiptNumber,
			code,
			name,
			agency.M(c.Amount, cur).String(),
			agency.M(c.Penalty, cur).String(),
			agency.M(c.Total(), cur).String(),
			c.CreatedAt.Format(timeFormat),
			c.ID,
		})
		total = agency.M(total.Decimal().Add(c.Total()), cur)
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Total: %s", total))
	return doc.String()
}

// Deposits renders the list of bank deposits.
func Deposits(l *agency.Ledger, deposits []agency.Deposit) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := l.Settings().Currency

	doc.H1(fmt.Sprintf("Deposits (%d)", len(deposits)))
	table := md.TableSet{
		Header: []string{"Date", "Amount", "ID"},
		Rows:   [][]string{},
	}
	for _, d := range deposits {
		table.Rows = append(table.Rows, []string{
			d.CreatedAt.Format(timeFormat),
			agency.M(d.Amount, cur).String(),
			d.ID,
		})
	}
	doc.Table(table)
	return doc.String()
}

// Dashboard renders the home screen summary.
func Dashboard(d agency.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Dashboard"
	if d.Agent != "" {
		title = fmt.Sprintf("Dashboard of %s", d.Agent)
	}
	doc.H1(title)
	doc.Table(md.TableSet{
		Header: []string{"", "Count", "Amount"},
		Rows: [][]string{
			{"Collections", fmt.Sprint(d.Collections), d.TotalCollections.String()},
			{"Deposits", fmt.Sprint(d.Deposits), d.TotalDeposits.String()},
			{"Balance in hand", "", d.Balance.String()},
		},
	})
	doc.PlainText(fmt.Sprintf("%d customers", d.Customers))
	return doc.String()
}

// Profile renders the agent profile.
func Profile(p agency.AgentProfile) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	validity := p.ValidityDate.String()
	doc.H1("Agent profile")
	doc.Table(md.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Name", p.Name},
			{"Agency number", p.AgencyNumber},
			{"Valid until", validity},
			{"Branch address", p.BranchAddress},
			{"Mobile", p.MobileNumber},
		},
	})
	return doc.String()
}

// Settings renders the application settings.
func Settings(s agency.AppSettings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	lot := "none"
	if s.MaxLotAmount.IsPositive() {
		lot = agency.M(s.MaxLotAmount, s.Currency).String()
	}
	doc.H1("Settings")
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Allow modifications", fmt.Sprint(s.AllowModifications)},
			{"Currency", s.Currency},
			{"Max lot amount", lot},
			{"Auto confirmation", fmt.Sprint(s.AutoConfirmationEnabled)},
			{"Confirmation method", string(s.ConfirmationMethod)},
		},
	})
	return doc.String()
}

// Reminders renders the customers due for a reminder, with their last collection day.
func Reminders(l *agency.Ledger, due []agency.Customer) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Due reminders (%d)", len(due)))
	if len(due) == 0 {
		doc.PlainText("No customer is due.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"Code", "Name", "Phone", "Last collection"},
		Rows:   [][]string{},
	}
	for _, c := range due {
		var last time.Time
		for _, col := range l.Collections(agency.ForCustomer(c.ID)) {
			if col.CreatedAt.After(last) {
				last = col.CreatedAt
			}
		}
		lastStr := "never"
		if !last.IsZero() {
			lastStr = last.Format(time.DateOnly)
		}
		table.Rows = append(table.Rows, []string{c.ShortCode, c.Name, c.Phone, lastStr})
	}
	doc.Table(table)
	return doc.String()
}

// ImportSummary renders the outcome of a customer import.
func ImportSummary(s agency.ImportSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Import")
	doc.PlainText(fmt.Sprintf("%d added, %d skipped.", s.Added, s.Skipped))
	return doc.String()
}
