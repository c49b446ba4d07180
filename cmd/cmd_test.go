package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/agency/notify"
	"github.com/google/subcommands"
)

// run executes one command line against a.
func run(t *testing.T, a *App, args ...string) subcommands.ExitStatus {
	t.Helper()
	top := flag.NewFlagSet("agc", flag.ContinueOnError)
	c := subcommands.NewCommander(top, "agc")
	Register(c)
	if err := top.Parse(args); err != nil {
		t.Fatalf("Parse(%q) error = %v", args, err)
	}
	return c.Execute(context.Background(), a)
}

func newTestApp() (*App, *bytes.Buffer) {
	var buf bytes.Buffer
	return &App{Config: Config{Backend: BackendMemory, Plain: true}, Out: &buf}, &buf
}

// recorder keeps the confirmations it is asked to send.
type recorder struct {
	sent []notify.Confirmation
}

func (r *recorder) Notify(_ context.Context, c notify.Confirmation) error {
	r.sent = append(r.sent, c)
	return nil
}

func TestCustomerCommands(t *testing.T) {
	a, out := newTestApp()

	if got := run(t, a, "customer-add", "-name", "Asha", "-phone", "98"); got != subcommands.ExitSuccess {
		t.Fatalf("customer-add = %v", got)
	}
	if got := run(t, a, "customer-add", "-phone", "98"); got != subcommands.ExitUsageError {
		t.Errorf("customer-add without name = %v, want usage error", got)
	}
	if got := run(t, a, "customer-update", "-name", "Asha K", "1"); got != subcommands.ExitSuccess {
		t.Fatalf("customer-update = %v", got)
	}

	l, _ := a.Ledger()
	c, ok := l.CustomerByShortCode("1")
	if !ok {
		t.Fatalf("customer #1 not found")
	}
	if c.Name != "Asha K" || c.Phone != "98" {
		t.Errorf("customer = %+v, want name updated and phone kept", c)
	}

	out.Reset()
	run(t, a, "customers")
	if !strings.Contains(out.String(), "Asha K") {
		t.Errorf("customers output does not list the customer:\n%s", out.String())
	}

	run(t, a, "customer-add", "-name", "Bimal", "-phone", "97")
	testCases := []struct {
		term    string
		want    string
		notWant string
	}{
		{term: "bim", want: "Bimal", notWant: "Asha K"},
		{term: "98", want: "Asha K", notWant: "Bimal"},
		{term: "nobody", notWant: "Asha K"},
	}
	for _, tc := range testCases {
		out.Reset()
		if got := run(t, a, "customers", "-q", tc.term); got != subcommands.ExitSuccess {
			t.Fatalf("customers -q %s = %v", tc.term, got)
		}
		if !strings.Contains(out.String(), tc.want) || strings.Contains(out.String(), tc.notWant) {
			t.Errorf("customers -q %s output:\n%s", tc.term, out.String())
		}
	}

	if got := run(t, a, "customer-delete", "1"); got != subcommands.ExitSuccess {
		t.Fatalf("customer-delete = %v", got)
	}
	if got := run(t, a, "customer-delete", "1"); got != subcommands.ExitFailure {
		t.Errorf("second customer-delete = %v, want failure", got)
	}
}

func TestCollectAndReports(t *testing.T) {
	a, out := newTestApp()
	run(t, a, "customer-add", "-name", "Asha")

	if got := run(t, a, "collect", "-c", "1", "-a", "500", "-penalty", "20"); got != subcommands.ExitSuccess {
		t.Fatalf("collect = %v", got)
	}
	if got := run(t, a, "collect", "-c", "42", "-a", "500"); got != subcommands.ExitFailure {
		t.Errorf("collect for an unknown customer = %v, want failure", got)
	}
	if got := run(t, a, "collect", "-c", "1", "-a", "abc"); got != subcommands.ExitUsageError {
		t.Errorf("collect with a bad amount = %v, want usage error", got)
	}
	if got := run(t, a, "deposit", "-a", "300"); got != subcommands.ExitSuccess {
		t.Fatalf("deposit = %v", got)
	}

	l, _ := a.Ledger()
	stats := l.ComputeStats()
	if !stats.Balance.Equal(stats.TotalCollections.Sub(stats.TotalDeposits)) || stats.Balance.IntPart() != 220 {
		t.Errorf("stats = %+v, want balance 220", stats)
	}

	out.Reset()
	run(t, a, "dashboard")
	if !strings.Contains(out.String(), "220.00") {
		t.Errorf("dashboard does not show the balance:\n%s", out.String())
	}

	col := l.Collections()[0]
	if got := run(t, a, "collection-update", "-a", "600", col.ReceiptNumber); got != subcommands.ExitSuccess {
		t.Fatalf("collection-update = %v", got)
	}
	if got, _ := l.Collection(col.ID); got.Amount.IntPart() != 600 || got.ReceiptNumber != col.ReceiptNumber {
		t.Errorf("updated collection = %+v", got)
	}
}

func TestModificationsGate(t *testing.T) {
	a, _ := newTestApp()
	run(t, a, "customer-add", "-name", "Asha")
	run(t, a, "deposit", "-a", "10")

	if got := run(t, a, "settings", "-allow-modifications=false"); got != subcommands.ExitSuccess {
		t.Fatalf("settings = %v", got)
	}
	l, _ := a.Ledger()
	d := l.Deposits()[0]

	for _, args := range [][]string{
		{"customer-delete", "1"},
		{"customer-update", "-name", "X", "1"},
		{"deposit-delete", d.ID},
		{"deposit-update", "-a", "5", d.ID},
	} {
		if got := run(t, a, args...); got != subcommands.ExitFailure {
			t.Errorf("%v = %v, want failure", args, got)
		}
	}
	if len(l.Customers()) != 1 || len(l.Deposits()) != 1 || l.Deposits()[0].Amount.IntPart() != 10 {
		t.Errorf("records changed while modifications are disabled")
	}
}

func TestSettingsValidation(t *testing.T) {
	a, _ := newTestApp()
	if got := run(t, a, "settings", "-currency", "XXQ"); got != subcommands.ExitFailure {
		t.Errorf("settings with unknown currency = %v, want failure", got)
	}
	if got := run(t, a, "settings", "-currency", "usd", "-max-lot", "1000"); got != subcommands.ExitSuccess {
		t.Fatalf("settings = %v", got)
	}
	l, _ := a.Ledger()
	if s := l.Settings(); s.Currency != "USD" || s.MaxLotAmount.IntPart() != 1000 {
		t.Errorf("settings = %+v", s)
	}
}

func TestAutoConfirmation(t *testing.T) {
	a, _ := newTestApp()
	rec := &recorder{}
	a.Notifier = rec
	run(t, a, "customer-add", "-name", "Asha", "-phone", "98")

	// enabled on a fresh installation.
	run(t, a, "collect", "-c", "1", "-a", "100")
	if len(rec.sent) != 1 || rec.sent[0].Method != "whatsapp" {
		t.Errorf("sent = %+v, want one whatsapp confirmation by default", rec.sent)
	}

	run(t, a, "settings", "-auto-confirm=false")
	run(t, a, "collect", "-c", "1", "-a", "100")
	if len(rec.sent) != 1 {
		t.Errorf("confirmation sent while disabled")
	}

	run(t, a, "settings", "-auto-confirm=true", "-confirm-method", "sms")
	run(t, a, "collect", "-c", "1", "-a", "100")
	if len(rec.sent) != 2 || rec.sent[1].Phone != "98" || rec.sent[1].Method != "sms" {
		t.Errorf("sent = %+v, want a second confirmation by sms to 98", rec.sent)
	}
}

func TestProfile(t *testing.T) {
	a, out := newTestApp()
	if got := run(t, a, "profile", "-name", "Ravi", "-validity", "2027-03-31"); got != subcommands.ExitSuccess {
		t.Fatalf("profile = %v", got)
	}
	l, _ := a.Ledger()
	if p := l.Profile(); p.Name != "Ravi" || p.ValidityDate.String() != "2027-03-31" {
		t.Errorf("profile = %+v", p)
	}
	out.Reset()
	run(t, a, "profile")
	if !strings.Contains(out.String(), "Ravi") {
		t.Errorf("profile output:\n%s", out.String())
	}
	if got := run(t, a, "profile", "-validity", "soon"); got != subcommands.ExitUsageError {
		t.Errorf("profile with a bad date = %v, want usage error", got)
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	a, out := newTestApp()

	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte("shortCode,name,phone\n,Asha,98\n1,Taken,99\n,Bimal,97\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := run(t, a, "customer-import", in); got != subcommands.ExitSuccess {
		t.Fatalf("customer-import = %v", got)
	}
	if !strings.Contains(out.String(), "2 added, 1 skipped") {
		t.Errorf("import summary:\n%s", out.String())
	}

	out.Reset()
	if got := run(t, a, "customer-export"); got != subcommands.ExitSuccess {
		t.Fatalf("customer-export = %v", got)
	}
	if !strings.HasPrefix(out.String(), `"shortCode","name"`) || !strings.Contains(out.String(), `"Bimal"`) {
		t.Errorf("customer-export output:\n%s", out.String())
	}

	run(t, a, "collect", "-c", "2", "-a", "50")
	l, _ := a.Ledger()
	number := l.Collections()[0].ReceiptNumber

	for _, tc := range []struct {
		args   []string
		file   string
		prefix string
	}{
		{[]string{"receipt", "-o", filepath.Join(dir, "r.pdf"), number}, "r.pdf", "%PDF"},
		{[]string{"export", "-o", filepath.Join(dir, "w.xlsx"), "workbook"}, "w.xlsx", "PK"},
		{[]string{"export", "-o", filepath.Join(dir, "c.csv"), "collections"}, "c.csv", `"receiptNumber"`},
	} {
		if got := run(t, a, tc.args...); got != subcommands.ExitSuccess {
			t.Fatalf("%v = %v", tc.args, got)
		}
		data, err := os.ReadFile(filepath.Join(dir, tc.file))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte(tc.prefix)) {
			t.Errorf("%s starts with %q, want %q", tc.file, data[:min(8, len(data))], tc.prefix)
		}
	}

	if got := run(t, a, "export", "everything"); got != subcommands.ExitUsageError {
		t.Errorf("export everything = %v, want usage error", got)
	}
}

func TestDirBackendPersists(t *testing.T) {
	cfg := Config{Backend: BackendDir, DataDir: t.TempDir(), Plain: true}
	a := &App{Config: cfg, Out: &bytes.Buffer{}}
	run(t, a, "customer-add", "-name", "Asha")
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b := &App{Config: cfg, Out: &bytes.Buffer{}}
	l, err := b.Ledger()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.CustomerByShortCode("1"); !ok {
		t.Errorf("customer not reloaded from %s", cfg.DataDir)
	}
}

func TestBackdate(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 15, 0, time.UTC)
	got, err := backdate("2026-10-01", now)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2026, 10, 1, 9, 30, 15, 0, time.UTC); !got.Equal(want) {
		t.Errorf("backdate() = %v, want %v", got, want)
	}
	if got, _ := backdate("", now); !got.IsZero() {
		t.Errorf("backdate(\"\") = %v, want zero", got)
	}
	if _, err := backdate("01/10/2026", now); err == nil {
		t.Errorf("backdate(bad) succeeded")
	}
}

func TestTopic(t *testing.T) {
	a, out := newTestApp()
	if got := run(t, a, "topic", "storage"); got != subcommands.ExitSuccess {
		t.Fatalf("topic = %v", got)
	}
	if !strings.Contains(out.String(), "# Storage") {
		t.Errorf("topic storage output:\n%s", out.String())
	}
	if got := run(t, a, "topic", "nope"); got != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want failure", got)
	}

	testCases := []struct {
		args []string
		want []string
	}{
		{args: []string{"topic"}, want: []string{"# agc help topics"}},
		{args: []string{"topic", "-list"}, want: []string{"customers", "Import and export", "storage"}},
	}
	for _, tc := range testCases {
		out.Reset()
		if got := run(t, a, tc.args...); got != subcommands.ExitSuccess {
			t.Fatalf("%v = %v", tc.args, got)
		}
		for _, want := range tc.want {
			if !strings.Contains(out.String(), want) {
				t.Errorf("%v output does not contain %q:\n%s", tc.args, want, out.String())
			}
		}
	}
	out.Reset()
	run(t, a, "topic", "-list")
	if strings.Contains(out.String(), "readme") {
		t.Errorf("topic -list lists the index:\n%s", out.String())
	}
}
