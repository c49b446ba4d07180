package agency

import (
	"time"

	"github.com/etnz/agency/date"
	"github.com/shopspring/decimal"
)

// Collection is an amount of cash collected from a customer.
//
// CustomerID is not checked against existing customers: a collection
// survives the deletion of its customer.
type Collection struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	Amount        decimal.Decimal `json:"amount"`
	Penalty       decimal.Decimal `json:"penalty"`
	ReceiptNumber string          `json:"receiptNumber"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Day returns the UTC day of the collection, the day its receipt number is
// stamped with.
func (c Collection) Day() date.Date { return date.Of(c.CreatedAt.UTC()) }

// Total returns the amount plus the penalty.
func (c Collection) Total() decimal.Decimal { return c.Amount.Add(c.Penalty) }

// CollectionInput holds the caller supplied fields of a new collection.
//
// An empty ReceiptNumber is generated from the collection day, a zero
// CreatedAt means now.
type CollectionInput struct {
	CustomerID    string
	Amount        decimal.Decimal
	Penalty       decimal.Decimal
	ReceiptNumber string
	CreatedAt     time.Time
}

// CollectionUpdate lists the fields to overwrite, nil fields are left untouched.
type CollectionUpdate struct {
	CustomerID    *string
	Amount        *decimal.Decimal
	Penalty       *decimal.Decimal
	ReceiptNumber *string
}

func (u CollectionUpdate) apply(c Collection) Collection {
	set(&c.CustomerID, u.CustomerID)
	set(&c.Amount, u.Amount)
	set(&c.Penalty, u.Penalty)
	set(&c.ReceiptNumber, u.ReceiptNumber)
	return c
}

// ForCustomer is a Collections filter accepting the collections of one customer.
func ForCustomer(customerID string) func(Collection) bool {
	return func(c Collection) bool { return c.CustomerID == customerID }
}
