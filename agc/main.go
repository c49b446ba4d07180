// Command agc keeps the ledger of a cash collection agency.
//
// Shell completion is installed with:
//
//	COMP_INSTALL=1 agc
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/agency/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitFailure))
	}
	cmd.RegisterFlags(flag.CommandLine, &cfg)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	completion(commander).Complete("agc")

	flag.Parse()
	app, err := cmd.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx, app)
	stop()
	if err := app.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	_ = app.Log.Sync()
	os.Exit(int(status))
}

// args predicts the positional arguments of some subcommands.
var args = map[string]complete.Predictor{
	"customer-import": predict.Files("*.csv"),
	"export":          predict.Set{"collections", "deposits", "workbook"},
	"topic":           predict.Set{"customers", "collections", "deposits", "import-export", "storage"},
}

// completion describes the registered subcommands and their flags.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f) })

	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cc := &complete.Command{Flags: map[string]complete.Predictor{}, Args: args[sub.Name()]}
		fs.VisitAll(func(f *flag.Flag) { cc.Flags[f.Name] = predictFlag(f) })
		root.Sub[sub.Name()] = cc
	})
	return root
}

func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "o", "sqlite":
		return predict.Files("*")
	case "data-dir":
		return predict.Dirs("*")
	case "backend":
		return predict.Set{cmd.BackendDir, cmd.BackendSQLite, cmd.BackendRedis, cmd.BackendMemory}
	case "confirm-method":
		return predict.Set{"whatsapp", "sms"}
	}
	return predict.Something
}
