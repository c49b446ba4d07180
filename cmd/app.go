// Package cmd implements the CLI application to run a collection agency.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/agency"
	"github.com/etnz/agency/date"
	"github.com/etnz/agency/kvstore"
	"github.com/etnz/agency/notify"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// App is passed to every subcommand as the first Execute argument.
//
// The ledger is opened on first use and kept for the life of the App.
type App struct {
	Config   Config
	Log      *zap.Logger
	Out      io.Writer
	Notifier notify.Notifier

	ledger *agency.Ledger
	close  func() error
}

// NewApp builds an App writing to stdout and logging to stderr.
func NewApp(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := NewLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %w", err)
	}
	return &App{
		Config:   cfg,
		Log:      log,
		Out:      os.Stdout,
		Notifier: notify.Logger{Log: log},
	}, nil
}

// NewLogger returns a console logger on stderr, at Warn level or Debug if verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		a.Log = zap.NewNop()
	}
	return a.Log
}

func (a *App) notifier() notify.Notifier {
	if a.Notifier == nil {
		return notify.Nop{}
	}
	return a.Notifier
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// openKV opens the configured storage.
func (a *App) openKV() (agency.KV, func() error, error) {
	nop := func() error { return nil }
	switch a.Config.Backend {
	case BackendMemory:
		return kvstore.NewMemory(), nop, nil
	case BackendSQLite:
		s, err := kvstore.OpenSQLite(a.Config.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case BackendRedis:
		r, err := kvstore.OpenRedis(kvstore.RedisOptions{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
			Prefix:   a.Config.RedisPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case BackendDir, "":
		return kvstore.NewDir(a.Config.DataDir), nop, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", a.Config.Backend)
	}
}

// Ledger returns the ledger, opening the storage on first call.
func (a *App) Ledger() (*agency.Ledger, error) {
	if a.ledger != nil {
		return a.ledger, nil
	}
	kv, closer, err := a.openKV()
	if err != nil {
		return nil, fmt.Errorf("cannot open %s storage: %w", a.Config.Backend, err)
	}
	a.ledger = agency.Open(kv, agency.WithLogger(a.logger()))
	a.close = closer
	return a.ledger, nil
}

// Close releases the storage.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	err := a.close()
	a.close, a.ledger = nil, nil
	return err
}

// printMarkdown renders md for the terminal.
func (a *App) printMarkdown(md string) {
	if a.Config.Plain {
		fmt.Fprint(a.out(), md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(a.out(), md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.out(), md)
		return
	}
	fmt.Fprint(a.out(), out)
}

// appOf extracts the App from the Execute arguments.
func appOf(args []interface{}) *App {
	for _, arg := range args {
		if a, ok := arg.(*App); ok {
			return a
		}
	}
	return &App{Config: Config{Backend: BackendMemory}}
}

// openLedger is the common prologue of every subcommand.
func openLedger(args []interface{}) (*App, *agency.Ledger, subcommands.ExitStatus) {
	a := appOf(args)
	l, err := a.Ledger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return a, nil, subcommands.ExitFailure
	}
	return a, l, subcommands.ExitSuccess
}

// saved reports the outcome of a mutation.
//
// A persistence error means the change is applied but not stored.
func saved(err error, what string) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, agency.ErrPersist):
		fmt.Fprintf(os.Stderr, "Warning: %s could not be saved: %v\n", what, err)
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}

// checkModifiable refuses edits when the settings forbid them.
func checkModifiable(l *agency.Ledger) bool {
	if l.Settings().AllowModifications {
		return true
	}
	fmt.Fprintln(os.Stderr, "Error: modifications are disabled, enable them with 'agc settings -allow-modifications=true'")
	return false
}

// findCustomer looks a customer up by short code, then by id.
func findCustomer(l *agency.Ledger, ref string) (agency.Customer, error) {
	if c, ok := l.CustomerByShortCode(ref); ok {
		return c, nil
	}
	if c, ok := l.Customer(ref); ok {
		return c, nil
	}
	return agency.Customer{}, fmt.Errorf("customer %q: %w", ref, agency.ErrNotFound)
}

// findCollection looks a collection up by receipt number, then by id.
func findCollection(l *agency.Ledger, ref string) (agency.Collection, error) {
	found := l.Collections(func(c agency.Collection) bool { return c.ReceiptNumber == ref })
	if len(found) > 0 {
		return found[0], nil
	}
	if c, ok := l.Collection(ref); ok {
		return c, nil
	}
	return agency.Collection{}, fmt.Errorf("collection %q: %w", ref, agency.ErrNotFound)
}

// parseAmount parses a non empty amount, an empty string is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return d, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// backdate returns the time on day d, at the current time of day.
// An empty day means zero, so that the ledger uses its clock.
func backdate(day string, now time.Time) (time.Time, error) {
	if day == "" {
		return time.Time{}, nil
	}
	d, err := date.Parse(day)
	if err != nil {
		return time.Time{}, err
	}
	h, m, s := now.Clock()
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, now.Location()), nil
}

// setFlags returns the names of the flags set on the command line.
func setFlags(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}
