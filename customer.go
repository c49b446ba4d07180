package agency

import (
	"strings"
	"time"
)

// Customer is a person the agent collects cash from.
type Customer struct {
	ID            string    `json:"id"`
	ShortCode     string    `json:"shortCode"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	AccountNumber string    `json:"accountNumber"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CustomerInput holds the caller supplied fields of a new customer.
//
// An empty ShortCode is replaced by the next available one.
type CustomerInput struct {
	ShortCode     string
	Name          string
	Phone         string
	Address       string
	AccountNumber string
	Email         string
}

// CustomerUpdate lists the fields to overwrite, nil fields are left untouched.
type CustomerUpdate struct {
	ShortCode     *string
	Name          *string
	Phone         *string
	Address       *string
	AccountNumber *string
	Email         *string
}

// apply merges u over c.
func (u CustomerUpdate) apply(c Customer) Customer {
	set(&c.ShortCode, u.ShortCode)
	set(&c.Name, u.Name)
	set(&c.Phone, u.Phone)
	set(&c.Address, u.Address)
	set(&c.AccountNumber, u.AccountNumber)
	set(&c.Email, u.Email)
	return c
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v. It helps building updates.
func Ptr[T any](v T) *T { return &v }

// matches reports whether term, already lower cased, is found in the short
// code, name, phone or account number of c.
func (c Customer) matches(term string) bool {
	for _, field := range []string{c.ShortCode, c.Name, c.Phone, c.AccountNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
