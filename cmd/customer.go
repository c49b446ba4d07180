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

type customerAddCmd struct {
	in agency.CustomerInput
}

func (*customerAddCmd) Name() string     { return "customer-add" }
func (*customerAddCmd) Synopsis() string { return "add a new customer" }
func (*customerAddCmd) Usage() string {
	return `agc customer-add -name <name> [-code <short_code>] [-phone <phone>] [-address <address>] [-account <account_number>] [-email <email>]

  Adds a customer. Without -code the next free short code is assigned.
`
}

func (p *customerAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.in.Name, "name", "", "Customer name (required).")
	f.StringVar(&p.in.ShortCode, "code", "", "Short code, digits only. Defaults to the next free code.")
	f.StringVar(&p.in.Phone, "phone", "", "Phone number.")
	f.StringVar(&p.in.Address, "address", "", "Postal address.")
	f.StringVar(&p.in.AccountNumber, "account", "", "Account number.")
	f.StringVar(&p.in.Email, "email", "", "Email address.")
}

func (p *customerAddCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if p.in.Name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	c, err := l.AddCustomer(p.in)
	if c.ID == "" {
		return saved(err, "customer")
	}
	fmt.Fprintf(a.out(), "Added customer #%s %s\n", c.ShortCode, c.Name)
	return saved(err, "customer")
}

type customerUpdateCmd struct {
	code, name, phone, address, account, email string
}

func (*customerUpdateCmd) Name() string     { return "customer-update" }
func (*customerUpdateCmd) Synopsis() string { return "update a customer" }
func (*customerUpdateCmd) Usage() string {
	return `agc customer-update [-code <short_code>] [-name <name>] [-phone <phone>] [-address <address>] [-account <account_number>] [-email <email>] <customer>

  Updates the fields given on the command line, others are left unchanged.
  <customer> is a short code or an id.
`
}

func (p *customerUpdateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.code, "code", "", "New short code.")
	f.StringVar(&p.name, "name", "", "New name.")
	f.StringVar(&p.phone, "phone", "", "New phone number.")
	f.StringVar(&p.address, "address", "", "New postal address.")
	f.StringVar(&p.account, "account", "", "New account number.")
	f.StringVar(&p.email, "email", "", "New email address.")
}

func (p *customerUpdateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one customer")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}
	c, err := findCustomer(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	set := setFlags(f)
	pick := func(name, v string) *string {
		if set[name] {
			return &v
		}
		return nil
	}
	u := agency.CustomerUpdate{
		ShortCode:     pick("code", p.code),
		Name:          pick("name", p.name),
		Phone:         pick("phone", p.phone),
		Address:       pick("address", p.address),
		AccountNumber: pick("account", p.account),
		Email:         pick("email", p.email),
	}

	c, err = l.UpdateCustomer(c.ID, u)
	if err != nil && c.ID == "" {
		return saved(err, "customer")
	}
	fmt.Fprintf(a.out(), "Updated customer #%s %s\n", c.ShortCode, c.Name)
	return saved(err, "customer")
}

type customerDeleteCmd struct{}

func (*customerDeleteCmd) Name() string     { return "customer-delete" }
func (*customerDeleteCmd) Synopsis() string { return "delete a customer" }
func (*customerDeleteCmd) Usage() string {
	return `agc customer-delete <customer>

  Deletes a customer. Its collections are kept.
`
}

func (*customerDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*customerDeleteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one customer")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !checkModifiable(l) {
		return subcommands.ExitFailure
	}
	c, err := findCustomer(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = l.DeleteCustomer(c.ID)
	fmt.Fprintf(a.out(), "Deleted customer #%s %s\n", c.ShortCode, c.Name)
	return saved(err, "deletion")
}

type customersCmd struct {
	query string
}

func (*customersCmd) Name() string     { return "customers" }
func (*customersCmd) Synopsis() string { return "list customers" }
func (*customersCmd) Usage() string {
	return `agc customers [-q <term>]

  Lists the customers by short code with the total collected from each.
  With -q, only the customers whose short code, name, phone or account
  number contains the term, ignoring case.
`
}

func (p *customersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.query, "q", "", "search `term`")
}

func (p *customersCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	a.printMarkdown(renderer.Customers(l, l.SearchCustomers(p.query)))
	return subcommands.ExitSuccess
}

type customerImportCmd struct{}

func (*customerImportCmd) Name() string     { return "customer-import" }
func (*customerImportCmd) Synopsis() string { return "import customers from a CSV file" }
func (*customerImportCmd) Usage() string {
	return `agc customer-import <file.csv>

  Imports customers from a CSV file with a header row. Known columns are
  shortCode, name, phone, address, accountNumber and email. Rows whose short
  code is already used are skipped. Use - to read stdin.
`
}

func (*customerImportCmd) SetFlags(*flag.FlagSet) {}

func (*customerImportCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one file")
		return subcommands.ExitUsageError
	}
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}

	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	sum, err := l.ImportCustomers(r)
	a.printMarkdown(renderer.ImportSummary(sum))
	return saved(err, "import")
}

type customerExportCmd struct {
	output string
}

func (*customerExportCmd) Name() string     { return "customer-export" }
func (*customerExportCmd) Synopsis() string { return "export customers to a CSV file" }
func (*customerExportCmd) Usage() string {
	return `agc customer-export [-o <file.csv>]

  Writes all customers as CSV, to stdout by default.
`
}

func (p *customerExportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file. Defaults to stdout.")
}

func (p *customerExportCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a, l, status := openLedger(args)
	if status != subcommands.ExitSuccess {
		return status
	}
	return writeOutput(a, p.output, l.ExportCustomers)
}

// writeOutput calls write on the named file, or on the App output if name is empty.
func writeOutput(a *App, name string, write func(io.Writer) error) subcommands.ExitStatus {
	if name == "" {
		if err := write(a.out()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	file, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := write(file); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Written %s\n", name)
	return subcommands.ExitSuccess
}
