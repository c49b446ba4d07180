package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/agency"
	"github.com/etnz/agency/renderer"
	"github.com/google/subcommands"
)

type depositCmd struct {
	amount string
	date   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a bank deposit of collected cash" }
func (*depositCmd) Usage() string {
	return `agc deposit -a <amount> [-d <date>]

  Records a deposit of collected cash at the bank.
`
}

func (p *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.amount, "a", "", "Deposited amount (required).")
	f.StringVar(&p.date, "d", "", "Deposit day (YYYY-MM-DD). Defaults to today.")
}

func (p *depositCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if p.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required")
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(p.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	when, err := backdate(p.date, l.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	d, err := l.AddDeposit(agency.DepositInput{Amount: amount, CreatedAt: when})
	if d.ID == "" {
		return saved(err, "deposit")
	}
	fmt.Fprintf(a.out(), "Deposited %s (%s)\n", agency.M(d.Amount, l.Settings().Currency), d.ID)
	return saved(err, "deposit")
}

type depositUpdateCmd struct {
	amount string
}

func (*depositUpdateCmd) Name() string     { return "deposit-update" }
func (*depositUpdateCmd) Synopsis() string { return "update a deposit" }
func (*depositUpdateCmd) Usage() string {
	return `agc deposit-update -a <amount> <deposit_id>

  Changes the amount of a deposit.
`
}

func (p *depositUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.amount, "a", "", "New amount.")
}

func (p *depositUpdateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one deposit")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}

	var u agency.DepositUpdate
	if setFlags(f)["a"] {
		amount, err := parseAmount(p.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Amount = &amount
	}
	d, err := l.UpdateDeposit(f.Arg(0), u)
	if d.ID == "" {
		return saved(err, "deposit")
	}
	fmt.Fprintf(a.out(), "Updated deposit %s: %s\n", d.ID, agency.M(d.Amount, l.Settings().Currency))
	return saved(err, "deposit")
}

type depositDeleteCmd struct{}

func (*depositDeleteCmd) Name() string     { return "deposit-delete" }
func (*depositDeleteCmd) Synopsis() string { return "delete a deposit" }
func (*depositDeleteCmd) Usage() string {
	return `agc deposit-delete <deposit_id>
`
}

func (*depositDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*depositDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one deposit")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}
	if _, ok := l.Deposit(f.Arg(0)); !ok {
		fmt.Fprintf(os.Stderr, "Error: deposit %q: %v\n", f.Arg(0), agency.ErrNotFound)
		return subcommands.ExitFailure
	}
	err := l.DeleteDeposit(f.Arg(0))
	fmt.Fprintf(a.out(), "Deleted deposit %s\n", f.Arg(0))
	return saved(err, "deletion")
}

type depositsCmd struct{}

func (*depositsCmd) Name() string     { return "deposits" }
func (*depositsCmd) Synopsis() string { return "list deposits" }
func (*depositsCmd) Usage() string {
	return `agc deposits
`
}

func (*depositsCmd) SetFlags(*flag.FlagSet) {}

func (*depositsCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	a.printMarkdown(renderer.Deposits(l, l.Deposits()))
	return subcommands.ExitSuccess
}
