package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/agency"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewConfirmation(t *testing.T) {
	settings := agency.DefaultSettings()
	settings.Currency = "USD"
	settings.ConfirmationMethod = agency.SMS
	cust := agency.Customer{Name: "Asha", Phone: "98", AccountNumber: "RD-1"}
	col := agency.Collection{
		Amount:        decimal.NewFromInt(100),
		Penalty:       decimal.NewFromInt(5),
		ReceiptNumber: "20261014001",
		CreatedAt:     time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}

	c := NewConfirmation(agency.AgentProfile{Name: "Ravi"}, settings, cust, col)
	if c.Method != agency.SMS || c.Phone != "98" {
		t.Errorf("NewConfirmation() = %+v", c)
	}
	for _, want := range []string{"Asha", "$105.00", "RD-1", "20261014001", "14-Oct-2026", "Ravi"} {
		if !strings.Contains(c.Message, want) {
			t.Errorf("message %q does not contain %q", c.Message, want)
		}
	}
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := Logger{Log: zap.New(core)}

	if err := n.Notify(context.Background(), Confirmation{Method: agency.WhatsApp, Phone: "98", Message: "hi"}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if logs.Len() != 1 || logs.All()[0].ContextMap()["phone"] != "98" {
		t.Errorf("logged %v", logs.All())
	}

	if err := n.Notify(context.Background(), Confirmation{Method: agency.WhatsApp}); err == nil {
		t.Errorf("Notify() without phone succeeded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Notify(ctx, Confirmation{Phone: "98"}); err == nil {
		t.Errorf("Notify() with a canceled context succeeded")
	}
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	if err := n.Notify(context.Background(), Confirmation{}); err != nil {
		t.Errorf("Nop.Notify() error = %v", err)
	}
}
