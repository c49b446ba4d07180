package agency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is an amount of collected cash paid into the bank.
type Deposit struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DepositInput holds the caller supplied fields of a new deposit.
// A zero CreatedAt means now.
type DepositInput struct {
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// DepositUpdate lists the fields to overwrite, nil fields are left untouched.
type DepositUpdate struct {
	Amount *decimal.Decimal
}

func (u DepositUpdate) apply(d Deposit) Deposit {
	set(&d.Amount, u.Amount)
	return d
}
