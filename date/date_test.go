package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: "", want: Date{}},
		{in: "01/07/2025", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStamp(t *testing.T) {
	if got := New(2024, 1, 5).Stamp(); got != "20240105" {
		t.Errorf("Stamp() = %q, want %q", got, "20240105")
	}
	if got := New(2024, 12, 31).Add(1).Stamp(); got != "20250101" {
		t.Errorf("Add(1).Stamp() = %q, want %q", got, "20250101")
	}
}

func TestOf(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 1st is already the 2nd in India.
	instant := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := Of(instant.In(loc)); got != New(2024, 3, 2) {
		t.Errorf("Of() = %v, want 2024-03-02", got)
	}
}

func TestJSON(t *testing.T) {
	type doc struct {
		Validity Date `json:"validity"`
	}
	for _, in := range []doc{{}, {Validity: New(2026, 3, 31)}} {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", in, err)
		}
		var out doc
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if out != in {
			t.Errorf("round trip of %s = %v, want %v", data, out, in)
		}
	}
	data, _ := json.Marshal(doc{})
	if string(data) != `{"validity":""}` {
		t.Errorf("zero date marshals as %s", data)
	}
}
