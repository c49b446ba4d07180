package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/agency"
	"github.com/etnz/agency/date"
	"github.com/etnz/agency/notify"
	"github.com/etnz/agency/receipt"
	"github.com/etnz/agency/renderer"
	"github.com/google/subcommands"
)

type collectCmd struct {
	customer string
	amount   string
	penalty  string
	date     string
	receipt  string
}

func (*collectCmd) Name() string     { return "collect" }
func (*collectCmd) Synopsis() string { return "record a cash collection from a customer" }
func (*collectCmd) Usage() string {
	return `agc collect -c <customer> -a <amount> [-penalty <amount>] [-d <date>] [-receipt <number>]

  Records a collection. The receipt number is generated from the collection
  day unless given. A warning is printed when the amount exceeds the maximum
  lot amount of the settings.

Usage Examples:
$ agc collect -c 12 -a 500
$ agc collect -c 12 -a 500 -penalty 20 -d 2025-03-01
`
}

func (p *collectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.customer, "c", "", "Customer short code or id (required).")
	f.StringVar(&p.amount, "a", "", "Collected amount (required).")
	f.StringVar(&p.penalty, "penalty", "", "Penalty collected on top of the amount.")
	f.StringVar(&p.date, "d", "", "Collection day (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.receipt, "receipt", "", "Receipt number. Generated if empty.")
}

func (p *collectCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if p.customer == "" || p.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -c and -a are required")
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(p.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	penalty, err := parseAmount(p.penalty)
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
	cust, err := findCustomer(l, p.customer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	settings := l.Settings()
	if settings.ExceedsLot(amount) {
		fmt.Fprintf(os.Stderr, "Warning: %s exceeds the maximum lot amount of %s\n",
			agency.M(amount, settings.Currency), agency.M(settings.MaxLotAmount, settings.Currency))
	}

	col, err := l.AddCollection(agency.CollectionInput{
		CustomerID:    cust.ID,
		Amount:        amount,
		Penalty:       penalty,
		ReceiptNumber: p.receipt,
		CreatedAt:     when,
	})
	if col.ID == "" {
		return saved(err, "collection")
	}
	fmt.Fprintf(a.out(), "Collected %s from #%s %s, receipt %s\n",
		agency.M(col.Total(), settings.Currency), cust.ShortCode, cust.Name, col.ReceiptNumber)

	if settings.AutoConfirmationEnabled {
		c := notify.NewConfirmation(l.Profile(), settings, cust, col)
		if nerr := a.notifier().Notify(ctx, c); nerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: confirmation not sent: %v\n", nerr)
		} else {
			fmt.Fprintf(a.out(), "Confirmation sent by %s to %s\n", c.Method, c.Phone)
		}
	}
	return saved(err, "collection")
}

type collectionUpdateCmd struct {
	customer string
	amount   string
	penalty  string
	receipt  string
}

func (*collectionUpdateCmd) Name() string     { return "collection-update" }
func (*collectionUpdateCmd) Synopsis() string { return "update a collection" }
func (*collectionUpdateCmd) Usage() string {
	return `agc collection-update [-c <customer>] [-a <amount>] [-penalty <amount>] [-receipt <number>] <collection>

  Updates the fields given on the command line. <collection> is a receipt
  number or an id. The collection time cannot be changed.
`
}

func (p *collectionUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.customer, "c", "", "New customer short code or id.")
	f.StringVar(&p.amount, "a", "", "New amount.")
	f.StringVar(&p.penalty, "penalty", "", "New penalty.")
	f.StringVar(&p.receipt, "receipt", "", "New receipt number.")
}

func (p *collectionUpdateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one collection")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}
	col, err := findCollection(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var u agency.CollectionUpdate
	set := setFlags(f)
	if set["c"] {
		cust, err := findCustomer(l, p.customer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		u.CustomerID = &cust.ID
	}
	if set["a"] {
		amount, err := parseAmount(p.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Amount = &amount
	}
	if set["penalty"] {
		penalty, err := parseAmount(p.penalty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		u.Penalty = &penalty
	}
	if set["receipt"] {
		u.ReceiptNumber = &p.receipt
	}

	col, err = l.UpdateCollection(col.ID, u)
	if col.ID == "" {
		return saved(err, "collection")
	}
	fmt.Fprintf(a.out(), "Updated collection %s\n", col.ReceiptNumber)
	return saved(err, "collection")
}

type collectionDeleteCmd struct{}

func (*collectionDeleteCmd) Name() string     { return "collection-delete" }
func (*collectionDeleteCmd) Synopsis() string { return "delete a collection" }
func (*collectionDeleteCmd) Usage() string {
	return `agc collection-delete <collection>

  Deletes a collection given by receipt number or id.
`
}

func (*collectionDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*collectionDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one collection")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}
	col, err := findCollection(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = l.DeleteCollection(col.ID)
	fmt.Fprintf(a.out(), "Deleted collection %s\n", col.ReceiptNumber)
	return saved(err, "deletion")
}

type collectionsCmd struct {
	customer string
	date     string
}

func (*collectionsCmd) Name() string     { return "collections" }
func (*collectionsCmd) Synopsis() string { return "list collections" }
func (*collectionsCmd) Usage() string {
	return `agc collections [-c <customer>] [-d <date>]

  Lists collections, optionally of a single customer or a single day.
`
}

func (p *collectionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.customer, "c", "", "Only list the collections of this customer.")
	f.StringVar(&p.date, "d", "", "Only list the collections of this day.")
}

func (p *collectionsCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	var filters []func(agency.Collection) bool
	if p.customer != "" {
		cust, err := findCustomer(l, p.customer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		filters = append(filters, agency.ForCustomer(cust.ID))
	}
	if p.date != "" {
		day, err := date.Parse(p.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, func(c agency.Collection) bool { return c.Day() == day })
	}
	a.printMarkdown(renderer.Collections(l, l.Collections(filters...)))
	return subcommands.ExitSuccess
}

type receiptCmd struct {
	output string
}

func (*receiptCmd) Name() string     { return "receipt" }
func (*receiptCmd) Synopsis() string { return "print the PDF receipt of a collection" }
func (*receiptCmd) Usage() string {
	return `agc receipt [-o <file.pdf>] <collection>

  Writes the receipt of a collection, given by receipt number or id, as a PDF.
  The file defaults to <receipt_number>.pdf, use -o - for stdout.
`
}

func (p *receiptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file.")
}

func (p *receiptCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one collection")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	col, err := findCollection(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	r, err := receipt.For(l, col.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	output := p.output
	switch output {
	case "":
		output = col.ReceiptNumber + ".pdf"
	case "-":
		output = ""
	}
	return writeOutput(a, output, func(w io.Writer) error { return receipt.Render(w, r) })
}
