package cmd

import (
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one, with an *App argument.
func Register(c *subcommands.Commander) {
	c.Register(&customerAddCmd{}, "customers")
	c.Register(&customerUpdateCmd{}, "customers")
	c.Register(&customerDeleteCmd{}, "customers")
	c.Register(&customersCmd{}, "customers")
	c.Register(&customerImportCmd{}, "customers")
	c.Register(&customerExportCmd{}, "customers")

	c.Register(&collectCmd{}, "collections")
	c.Register(&collectionUpdateCmd{}, "collections")
	c.Register(&collectionDeleteCmd{}, "collections")
	c.Register(&collectionsCmd{}, "collections")
	c.Register(&receiptCmd{}, "collections")

	c.Register(&depositCmd{}, "deposits")
	c.Register(&depositUpdateCmd{}, "deposits")
	c.Register(&depositDeleteCmd{}, "deposits")
	c.Register(&depositsCmd{}, "deposits")

	c.Register(&profileCmd{}, "agency")
	c.Register(&settingsCmd{}, "agency")

	c.Register(&dashboardCmd{}, "reports")
	c.Register(&remindersCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}
