// Package notify confirms collections to customers.
//
// No messaging provider is wired: Nop drops confirmations and Logger only
// records them. A real provider implements Notifier.
package notify

import (
	"context"
	"fmt"

	"github.com/etnz/agency"
	"go.uber.org/zap"
)

// Confirmation is a message telling a customer a collection was recorded.
type Confirmation struct {
	Method  agency.ConfirmationMethod
	Phone   string
	Message string
}

// Notifier sends confirmations.
type Notifier interface {
	Notify(ctx context.Context, c Confirmation) error
}

// NewConfirmation builds the confirmation of col, sent by the method set in settings.
func NewConfirmation(profile agency.AgentProfile, settings agency.AppSettings, cust agency.Customer, col agency.Collection) Confirmation {
	msg := fmt.Sprintf("Dear %s, %s received for account %s, receipt %s on %s.",
		cust.Name,
		agency.M(col.Total(), settings.Currency),
		cust.AccountNumber,
		col.ReceiptNumber,
		col.CreatedAt.Format("02-Jan-2006"),
	)
	if profile.Name != "" {
		msg += " - " + profile.Name
	}
	return Confirmation{Method: settings.ConfirmationMethod, Phone: cust.Phone, Message: msg}
}

// Nop drops every confirmation.
type Nop struct{}

func (Nop) Notify(context.Context, Confirmation) error { return nil }

// Logger records confirmations instead of sending them.
type Logger struct {
	Log *zap.Logger
}

func (n Logger) Notify(ctx context.Context, c Confirmation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Phone == "" {
		return fmt.Errorf("cannot confirm by %s: customer has no phone number", c.Method)
	}
	n.Log.Info("confirmation",
		zap.String("method", string(c.Method)),
		zap.String("phone", c.Phone),
		zap.String("message", c.Message),
	)
	return nil
}
