package agency

import (
	"fmt"

	"github.com/etnz/agency/date"
	"github.com/shopspring/decimal"
)

// AgentProfile identifies the agent running the business.
type AgentProfile struct {
	Name          string    `json:"name"`
	AgencyNumber  string    `json:"agencyNumber"`
	ValidityDate  date.Date `json:"validityDate"`
	BranchAddress string    `json:"branchAddress"`
	MobileNumber  string    `json:"mobileNumber"`
}

// DefaultProfile returns the placeholder profile of a fresh installation,
// valid from today.
func DefaultProfile(today date.Date) AgentProfile {
	return AgentProfile{
		Name:          "Post Agent",
		AgencyNumber:  "PA-12345",
		ValidityDate:  today,
		BranchAddress: "Main Post Office, Cityville",
		MobileNumber:  "1234567890",
	}
}

// ConfirmationMethod is the channel used to confirm a collection to a customer.
type ConfirmationMethod string

const (
	WhatsApp ConfirmationMethod = "whatsapp"
	SMS      ConfirmationMethod = "sms"
)

// ParseConfirmationMethod parses a string into a ConfirmationMethod.
func ParseConfirmationMethod(s string) (ConfirmationMethod, error) {
	switch m := ConfirmationMethod(s); m {
	case WhatsApp, SMS:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown confirmation method: %q", ErrInvalidSettings, s)
	}
}

// AppSettings holds the application preferences.
type AppSettings struct {
	// AllowModifications gates edit and delete actions.
	AllowModifications bool   `json:"allowModifications"`
	Currency           string `json:"currency"`
	// MaxLotAmount is an advisory ceiling per collection, zero means none.
	MaxLotAmount            decimal.Decimal    `json:"maxLotAmount"`
	AutoConfirmationEnabled bool               `json:"autoConfirmationEnabled"`
	ConfirmationMethod      ConfirmationMethod `json:"confirmationMethod"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() AppSettings {
	return AppSettings{
		AllowModifications:      true,
		Currency:                DefaultCurrency,
		MaxLotAmount:            decimal.NewFromInt(20000),
		AutoConfirmationEnabled: true,
		ConfirmationMethod:      WhatsApp,
	}
}

// Validate checks the settings for correctness.
func (s AppSettings) Validate() error {
	if !KnownCurrency(s.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidSettings, s.Currency)
	}
	if s.MaxLotAmount.IsNegative() {
		return fmt.Errorf("%w: negative max lot amount %s", ErrInvalidSettings, s.MaxLotAmount)
	}
	if _, err := ParseConfirmationMethod(string(s.ConfirmationMethod)); err != nil {
		return err
	}
	return nil
}

// ExceedsLot reports whether amount is above the configured lot ceiling.
func (s AppSettings) ExceedsLot(amount decimal.Decimal) bool {
	return s.MaxLotAmount.IsPositive() && amount.GreaterThan(s.MaxLotAmount)
}
