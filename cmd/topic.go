package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/agency/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the help topics embedded in the docs package.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read a help topic" }
func (*topicCmd) Usage() string {
	return `agc topic [-list] [<topic>... | '*']

  Prints the named help topics one after the other, '*' for all of them.
  Without a topic it prints the index. With -list it prints the name and
  title of every topic instead.

$ agc topic customers import-export
`
}

func (p *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.list, "list", false, "list the topic names and titles")
}

func (p *topicCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appOf(args)
	if p.list {
		list, err := topicList()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		a.printMarkdown(list)
		return subcommands.ExitSuccess
	}
	doc, err := docs.Topics(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading topic: %v\n", err)
		return subcommands.ExitFailure
	}
	a.printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicList returns a markdown list of the topics, in the form of the index.
func topicList() (string, error) {
	names, err := docs.All()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, name := range names {
		title, err := docs.Title(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "* %s: %s\n", name, title)
	}
	return b.String(), nil
}
