package agency

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/etnz/agency/date"
)

// parseShortCode parses a short code in its strict form: decimal digits, no
// sign, no leading zero except for "0" itself. Codes have no size limit.
func parseShortCode(code string) (*big.Int, bool) {
	if code == "" || (len(code) > 1 && code[0] == '0') {
		return nil, false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(code, 10)
}

// ValidShortCode reports whether code is a well formed short code: a
// positive integer written without leading zeros.
func ValidShortCode(code string) bool {
	n, ok := parseShortCode(code)
	return ok && n.Sign() > 0
}

// shortCodeValue is the sort key of a short code, malformed codes count as 0.
func shortCodeValue(code string) *big.Int {
	if n, ok := parseShortCode(code); ok {
		return n
	}
	return new(big.Int)
}

// NextShortCode returns the short code following the highest well formed
// short code among customers, or "1" if there is none.
//
// It is recomputed from a scan: deleting the customer holding the highest
// code makes that code available again.
func NextShortCode(customers []Customer) string {
	maxCode := new(big.Int)
	for _, c := range customers {
		if n, ok := parseShortCode(c.ShortCode); ok && n.Cmp(maxCode) > 0 {
			maxCode = n
		}
	}
	return maxCode.Add(maxCode, big.NewInt(1)).String()
}

// NextReceiptNumber returns the next receipt number for the day on.
//
// Receipt numbers are the YYYYMMDD stamp of the day followed by a sequence
// padded to 3 digits. The sequence restarts at 001 each day and keeps
// counting past 999 with a wider field.
func NextReceiptNumber(collections []Collection, on date.Date) string {
	stamp := on.Stamp()
	var seq uint64
	for _, c := range collections {
		rn := c.ReceiptNumber
		if len(rn) <= date.StampLen || !strings.HasPrefix(rn, stamp) {
			continue
		}
		n, err := strconv.ParseUint(rn[date.StampLen:], 10, 64)
		if err != nil {
			continue
		}
		seq = max(seq, n)
	}
	return fmt.Sprintf("%s%03d", stamp, seq+1)
}
