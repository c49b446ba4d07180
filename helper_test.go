package agency

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/agency/kvstore"
	"github.com/shopspring/decimal"
)

// testTime is the fixed clock of test ledgers.
var testTime = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// newTestLedger returns a ledger over kv with predictable ids and clock.
func newTestLedger(kv KV) *Ledger {
	if kv == nil {
		kv = kvstore.NewMemory()
	}
	n := 0
	return Open(kv,
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time { return testTime }),
	)
}

// D is a helper for test to create decimals from const
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// failingKV reads from an in-memory storage but refuses to write.
type failingKV struct {
	*kvstore.Memory
}

func (failingKV) Set(string, []byte) error { return errors.New("storage full") }
