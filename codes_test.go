package agency

import (
	"testing"

	"github.com/etnz/agency/date"
)

func customersWithCodes(codes ...string) []Customer {
	var cs []Customer
	for _, code := range codes {
		cs = append(cs, Customer{ShortCode: code})
	}
	return cs
}

func TestNextShortCode(t *testing.T) {
	testCases := []struct {
		name  string
		codes []string
		want  string
	}{
		{name: "no customers", codes: nil, want: "1"},
		{name: "unordered codes", codes: []string{"3", "1", "7"}, want: "8"},
		{name: "malformed codes excluded", codes: []string{"abc", "02"}, want: "1"},
		{name: "mixed", codes: []string{"abc", "02", "5", "-9", "4.0"}, want: "6"},
		{name: "zero", codes: []string{"0"}, want: "1"},
		{name: "large", codes: []string{"999999"}, want: "1000000"},
		{name: "past uint64", codes: []string{"18446744073709551615"}, want: "18446744073709551616"},
		{name: "past uint64 digits", codes: []string{"99999999999999999999999", "3"}, want: "100000000000000000000000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextShortCode(customersWithCodes(tc.codes...)); got != tc.want {
				t.Errorf("NextShortCode(%v) = %q, want %q", tc.codes, got, tc.want)
			}
		})
	}
}

func TestValidShortCode(t *testing.T) {
	valid := []string{"1", "42", "1000", "18446744073709551616"}
	invalid := []string{"", "0", "00", "01", "abc", "-1", "+1", "1 ", "1e3"}
	for _, c := range valid {
		if !ValidShortCode(c) {
			t.Errorf("ValidShortCode(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if ValidShortCode(c) {
			t.Errorf("ValidShortCode(%q) = true, want false", c)
		}
	}
}

func receipts(numbers ...string) []Collection {
	var cs []Collection
	for _, n := range numbers {
		cs = append(cs, Collection{ReceiptNumber: n})
	}
	return cs
}

func TestNextReceiptNumber(t *testing.T) {
	today := date.New(2026, 10, 14)
	testCases := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "none", existing: nil, want: "20261014001"},
		{name: "other day only", existing: []string{"20240101001"}, want: "20261014001"},
		{name: "continues today", existing: []string{"20240101001", "20261014001", "20261014002"}, want: "20261014003"},
		{name: "stamp alone ignored", existing: []string{"20261014"}, want: "20261014001"},
		{name: "garbage suffix ignored", existing: []string{"20261014abc", "20261014004"}, want: "20261014005"},
		{name: "past 999", existing: []string{"20261014999"}, want: "202610141000"},
		{name: "after 1000", existing: []string{"20261014999", "202610141000"}, want: "202610141001"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextReceiptNumber(receipts(tc.existing...), today); got != tc.want {
				t.Errorf("NextReceiptNumber(%v) = %q, want %q", tc.existing, got, tc.want)
			}
		})
	}
}
