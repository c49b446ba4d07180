package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/agency"
	"github.com/etnz/agency/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display totals and cash in hand" }
func (*dashboardCmd) Usage() string {
	return `agc dashboard

  Displays the total collected, the total deposited and the balance of cash
  still to deposit.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	a.printMarkdown(renderer.Dashboard(l.Dashboard()))
	return subcommands.ExitSuccess
}

type remindersCmd struct {
	days int
}

func (*remindersCmd) Name() string     { return "reminders" }
func (*remindersCmd) Synopsis() string { return "list customers due for a reminder" }
func (*remindersCmd) Usage() string {
	return `agc reminders [-days <n>]

  Lists the customers without any collection during the last <n> days.
  With -days 0, no customer is due.
`
}

func (p *remindersCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.days, "days", 30, "Number of days without collection before a customer is due.")
}

func (p *remindersCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if p.days < 0 {
		fmt.Fprintln(os.Stderr, "Error: -days cannot be negative")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	var policy agency.DuePolicy = agency.NeverDue
	if p.days > 0 {
		policy = agency.NoCollectionSince(p.days, l.Today())
	}
	a.printMarkdown(renderer.Reminders(l, l.DueReminders(policy)))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export collections, deposits or a whole workbook" }
func (*exportCmd) Usage() string {
	return `agc export [-o <file>] collections|deposits|workbook

  collections and deposits are written as CSV, to stdout by default.
  workbook writes an XLSX file with customers, collections and deposits
  sheets, to agency.xlsx by default.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file.")
}

func (p *exportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one of collections, deposits or workbook")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}

	var write func(io.Writer) error
	output := p.output
	switch f.Arg(0) {
	case "collections":
		write = l.ExportCollections
	case "deposits":
		write = l.ExportDeposits
	case "workbook":
		write = l.ExportWorkbook
		if output == "" {
			output = "agency.xlsx"
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown export %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	if output == "-" {
		output = ""
	}
	return writeOutput(a, output, write)
}
