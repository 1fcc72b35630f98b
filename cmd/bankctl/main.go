// Command bankctl is the operator console: listings, money movements and
// the live dashboard, straight against the configured database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range readCommands {
		commander.Register(c, "reports")
	}
	for _, c := range writeCommands {
		commander.Register(c, "operations")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
