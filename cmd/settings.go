package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/agency"
	"github.com/etnz/agency/date"
	"github.com/etnz/agency/renderer"
	"github.com/google/subcommands"
)

type profileCmd struct {
	name, agencyNumber, validity, branch, mobile string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "display or edit the agent profile" }
func (*profileCmd) Usage() string {
	return `agc profile [-name <name>] [-agency-number <number>] [-validity <date>] [-branch <address>] [-mobile <number>]

  Without flags, displays the agent profile. With flags, updates the given fields.
`
}

func (p *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Agent name.")
	f.StringVar(&p.agencyNumber, "agency-number", "", "Agency number.")
	f.StringVar(&p.validity, "validity", "", "Validity date of the agency (YYYY-MM-DD).")
	f.StringVar(&p.branch, "branch", "", "Branch address.")
	f.StringVar(&p.mobile, "mobile", "", "Mobile number.")
}

func (p *profileCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	set := setFlags(f)
	if len(set) == 0 {
		a.printMarkdown(renderer.Profile(l.Profile()))
		return subcommands.ExitSuccess
	}

	pr := l.Profile()
	if set["name"] {
		pr.Name = p.name
	}
	if set["agency-number"] {
		pr.AgencyNumber = p.agencyNumber
	}
	if set["validity"] {
		d, err := date.Parse(p.validity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing validity date: %v\n", err)
			return subcommands.ExitUsageError
		}
		pr.ValidityDate = d
	}
	if set["branch"] {
		pr.BranchAddress = p.branch
	}
	if set["mobile"] {
		pr.MobileNumber = p.mobile
	}
	err := l.SetProfile(pr)
	a.printMarkdown(renderer.Profile(l.Profile()))
	return saved(err, "profile")
}

type settingsCmd struct {
	allowModifications bool
	currency           string
	maxLot             string
	autoConfirm        bool
	method             string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or edit the application settings" }
func (*settingsCmd) Usage() string {
	return `agc settings [-allow-modifications=<bool>] [-currency <code>] [-max-lot <amount>] [-auto-confirm=<bool>] [-confirm-method whatsapp|sms]

  Without flags, displays the settings. With flags, updates the given fields.

Usage Examples:
$ agc settings -currency USD -max-lot 5000
$ agc settings -allow-modifications=false
`
}

func (p *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.allowModifications, "allow-modifications", true, "Allow edit and delete commands.")
	f.StringVar(&p.currency, "currency", "", "ISO 4217 currency code.")
	f.StringVar(&p.maxLot, "max-lot", "", "Maximum amount of a single collection, 0 for none.")
	f.BoolVar(&p.autoConfirm, "auto-confirm", false, "Send a confirmation after each collection.")
	f.StringVar(&p.method, "confirm-method", "", "Confirmation method (whatsapp, sms).")
}

func (p *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	set := setFlags(f)
	if len(set) == 0 {
		a.printMarkdown(renderer.Settings(l.Settings()))
		return subcommands.ExitSuccess
	}

	s := l.Settings()
	if set["allow-modifications"] {
		s.AllowModifications = p.allowModifications
	}
	if set["currency"] {
		s.Currency = strings.ToUpper(p.currency)
	}
	if set["max-lot"] {
		ceiling, err := parseAmount(p.maxLot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.MaxLotAmount = ceiling
	}
	if set["auto-confirm"] {
		s.AutoConfirmationEnabled = p.autoConfirm
	}
	if set["confirm-method"] {
		s.ConfirmationMethod = agency.ConfirmationMethod(strings.ToLower(p.method))
	}
	err := l.SetSettings(s)
	if err == nil || errors.Is(err, agency.ErrPersist) {
		a.printMarkdown(renderer.Settings(l.Settings()))
	}
	return saved(err, "settings")
}
