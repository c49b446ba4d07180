package agency

import (
	"time"

	"github.com/etnz/agency/date"
	"github.com/shopspring/decimal"
)

// Stats aggregates the cash flow of a ledger.
type Stats struct {
	// TotalCollections is the sum of amounts and penalties of all collections.
	TotalCollections decimal.Decimal
	// TotalDeposits is the sum of all deposits.
	TotalDeposits decimal.Decimal
	// Balance is the cash in hand: collected but not deposited.
	Balance decimal.Decimal
}

// ComputeStats computes the totals over the current state.
func (l *Ledger) ComputeStats() Stats {
	var s Stats
	for _, c := range l.collections {
		s.TotalCollections = s.TotalCollections.Add(c.Total())
	}
	for _, d := range l.deposits {
		s.TotalDeposits = s.TotalDeposits.Add(d.Amount)
	}
	s.Balance = s.TotalCollections.Sub(s.TotalDeposits)
	return s
}

// CustomerTotal returns the sum of amounts and penalties collected from a customer.
func (l *Ledger) CustomerTotal(customerID string) decimal.Decimal {
	var total decimal.Decimal
	for _, c := range l.collections {
		if c.CustomerID == customerID {
			total = total.Add(c.Total())
		}
	}
	return total
}

// Dashboard is the summary shown on the home screen.
type Dashboard struct {
	Agent            string
	Currency         string
	Customers        int
	Collections      int
	Deposits         int
	TotalCollections Money
	TotalDeposits    Money
	Balance          Money
}

// Dashboard computes the home screen summary.
func (l *Ledger) Dashboard() Dashboard {
	s := l.ComputeStats()
	cur := l.settings.Currency
	return Dashboard{
		Agent:            l.profile.Name,
		Currency:         cur,
		Customers:        len(l.customers),
		Collections:      len(l.collections),
		Deposits:         len(l.deposits),
		TotalCollections: M(s.TotalCollections, cur),
		TotalDeposits:    M(s.TotalDeposits, cur),
		Balance:          M(s.Balance, cur),
	}
}

// DuePolicy decides whether a customer is due for a reminder.
type DuePolicy func(l *Ledger, c Customer) bool

// NeverDue is the policy under which no customer is ever due.
func NeverDue(*Ledger, Customer) bool { return false }

// NoCollectionSince returns a policy under which a customer is due when none
// of its collections happened in the last days up to and including on.
func NoCollectionSince(days int, on date.Date) DuePolicy {
	since := on.Add(1 - days)
	return func(l *Ledger, c Customer) bool {
		for _, col := range l.collections {
			if col.CustomerID != c.ID {
				continue
			}
			day := col.Day()
			if !day.Before(since) && !day.After(on) {
				return false
			}
		}
		return true
	}
}

// DueReminders returns the customers due under policy, in creation order. A
// nil policy is NeverDue.
func (l *Ledger) DueReminders(policy DuePolicy) []Customer {
	if policy == nil {
		policy = NeverDue
	}
	var due []Customer
	for _, c := range l.customers {
		if policy(l, c) {
			due = append(due, c)
		}
	}
	return due
}

// Today returns the current UTC day according to the ledger clock.
func (l *Ledger) Today() date.Date { return date.Of(l.now().UTC()) }

// Now returns the current time according to the ledger clock.
func (l *Ledger) Now() time.Time { return l.now() }
