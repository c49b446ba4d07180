package agency

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestImportCustomers(t *testing.T) {
	l := newTestLedger(nil)
	l.AddCustomer(CustomerInput{ShortCode: "5", Name: "Existing"})

	in := "shortCode,name,phone\n5,Collides,111\n9,New,222\n"
	sum, err := l.ImportCustomers(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportCustomers() error = %v", err)
	}
	if sum.Added != 1 || sum.Skipped != 1 {
		t.Errorf("ImportCustomers() = %+v, want 1 added 1 skipped", sum)
	}
	if n := len(l.Customers()); n != 2 {
		t.Errorf("len(Customers()) = %d, want 2", n)
	}
	if c, ok := l.CustomerByShortCode("9"); !ok || c.Name != "New" || c.Phone != "222" {
		t.Errorf("imported customer = %+v, %v", c, ok)
	}
}

func TestImportCustomersGeneratesCodes(t *testing.T) {
	l := newTestLedger(nil)
	l.AddCustomer(CustomerInput{ShortCode: "3", Name: "Existing"})

	// missing column, invalid codes, duplicates within the file, unknown
	// column, and a row without a name.
	in := strings.Join([]string{
		"name,shortCode,extra",
		"NoCode,,x",
		"BadCode,007,x",
		"Zero,0,x",
		"Explicit,10,x",
		"Again,10,x",
		",11,x",
	}, "\n")
	sum, err := l.ImportCustomers(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportCustomers() error = %v", err)
	}
	if sum.Added != 5 || sum.Skipped != 1 {
		t.Errorf("ImportCustomers() = %+v, want 5 added 1 skipped", sum)
	}
	if c, ok := l.CustomerByShortCode("11"); !ok || c.Name != "" {
		t.Errorf("CustomerByShortCode(11) = %+v, %v, want a customer without a name", c, ok)
	}
	want := map[string]string{"NoCode": "4", "BadCode": "5", "Zero": "6", "Explicit": "10"}
	for _, c := range l.Customers() {
		if code, ok := want[c.Name]; ok && c.ShortCode != code {
			t.Errorf("customer %q short code = %q, want %q", c.Name, c.ShortCode, code)
		}
	}
}

func TestImportCustomersWithoutName(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		added int
		code  string
		phone string
	}{
		{name: "no name column", in: "shortCode,phone\n5,123\n", added: 1, code: "5", phone: "123"},
		{name: "blank name", in: "name,phone\n  ,456\n", added: 1, code: "1", phone: "456"},
		{name: "only unknown columns", in: "extra\nx\n", added: 1, code: "1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(nil)
			sum, err := l.ImportCustomers(strings.NewReader(tc.in))
			if err != nil {
				t.Fatalf("ImportCustomers() error = %v", err)
			}
			if sum.Added != tc.added || sum.Skipped != 0 {
				t.Errorf("ImportCustomers() = %+v, want %d added", sum, tc.added)
			}
			c, ok := l.CustomerByShortCode(tc.code)
			if !ok || c.Name != "" || c.Phone != tc.phone {
				t.Errorf("CustomerByShortCode(%q) = %+v, %v, want phone %q", tc.code, c, ok, tc.phone)
			}
		})
	}
}

func TestExportImportCustomers(t *testing.T) {
	src := newTestLedger(nil)
	src.AddCustomer(CustomerInput{Name: `Shah, "Raj"`, Phone: "98", Address: "Line 1\nLine 2", AccountNumber: "A-1"})
	src.AddCustomer(CustomerInput{Name: "Meena", Email: "m@example.com"})

	var buf bytes.Buffer
	if err := src.ExportCustomers(&buf); err != nil {
		t.Fatalf("ExportCustomers() error = %v", err)
	}
	header, _, _ := strings.Cut(buf.String(), "\n")
	if header != `"shortCode","name","phone","address","accountNumber","email"` {
		t.Errorf("export header = %s", header)
	}

	dst := newTestLedger(nil)
	sum, err := dst.ImportCustomers(&buf)
	if err != nil || sum.Added != 2 {
		t.Fatalf("ImportCustomers() = %+v, %v", sum, err)
	}
	for i, got := range dst.Customers() {
		want := src.Customers()[i]
		if got.ShortCode != want.ShortCode || got.Name != want.Name || got.Address != want.Address ||
			got.Phone != want.Phone || got.AccountNumber != want.AccountNumber || got.Email != want.Email {
			t.Errorf("re-imported customer %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestExportCollectionsAndDeposits(t *testing.T) {
	l := newTestLedger(nil)
	c, _ := l.AddCustomer(CustomerInput{Name: "A"})
	l.AddCollection(CollectionInput{CustomerID: c.ID, Amount: D("100"), Penalty: D("2.5")})
	l.AddCollection(CollectionInput{CustomerID: "gone", Amount: D("7")})
	l.AddDeposit(DepositInput{Amount: D("50")})

	var buf bytes.Buffer
	if err := l.ExportCollections(&buf); err != nil {
		t.Fatalf("ExportCollections() error = %v", err)
	}
	rows, _ := DecodeCSV(&buf)
	if len(rows) != 2 {
		t.Fatalf("exported %d collections, want 2", len(rows))
	}
	if rows[0]["shortCode"] != "1" || rows[0]["customerName"] != "A" || rows[0]["penalty"] != "2.5" ||
		rows[0]["createdAt"] != testTime.Format(time.RFC3339) {
		t.Errorf("first collection row = %v", rows[0])
	}
	if rows[1]["customerName"] != "" || rows[1]["amount"] != "7" {
		t.Errorf("dangling collection row = %v", rows[1])
	}

	buf.Reset()
	if err := l.ExportDeposits(&buf); err != nil {
		t.Fatalf("ExportDeposits() error = %v", err)
	}
	rows, _ = DecodeCSV(&buf)
	if len(rows) != 1 || rows[0]["amount"] != "50" {
		t.Errorf("exported deposits = %v", rows)
	}
}
