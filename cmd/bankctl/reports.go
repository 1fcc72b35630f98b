package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"bank_system/internal/dashboard"

	"github.com/google/subcommands"
)

var readCommands = []subcommands.Command{
	&clientsCmd{},
	&accountsCmd{},
	&historyCmd{},
	&auditCmd{},
	&dashboardCmd{},
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

type clientsCmd struct{}

func (*clientsCmd) Name() string             { return "clients" }
func (*clientsCmd) Synopsis() string         { return "list clients" }
func (*clientsCmd) Usage() string            { return "clients\n" }
func (*clientsCmd) SetFlags(f *flag.FlagSet) {}

func (c *clientsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	clients, err := e.engine.ListClients(ctx)
	if err != nil {
		return fail(err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSINCE")
	for _, cl := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", cl.ID, cl.Name, cl.CreatedAt.Format(time.DateOnly))
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type accountsCmd struct {
	client uint
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their owners" }
func (*accountsCmd) Usage() string {
	return `accounts [-client <id>]

  Lists every account, or only those of one client.
`
}
func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.UintVar(&c.client, "client", 0, "only accounts of this client id")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	views, err := e.engine.ListAccounts(ctx)
	if err != nil {
		return fail(err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCLIENT\tCURRENCY\tBALANCE")
	for _, v := range views {
		if c.client != 0 && v.ClientID != c.client {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Number, v.ClientName, v.Currency, dashboard.FormatMoney(v.Balance, v.Currency))
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string             { return "history" }
func (*historyCmd) Synopsis() string         { return "show the transactions of an account" }
func (*historyCmd) Usage() string            { return "history <account-number>\n" }
func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one account number is required.")
		return subcommands.ExitUsageError
	}
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	txs, err := e.engine.GetHistory(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tKIND\tAMOUNT\tNOTE")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.CreatedAt.Format(time.DateTime), t.Kind, t.Amount.StringFixed(2), t.Note)
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type auditCmd struct {
	limit int
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "show recent audit entries" }
func (*auditCmd) Usage() string    { return "audit [-n <count>]\n" }
func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "number of entries")
}

func (c *auditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	entries, err := e.audit.GetRecent(ctx, c.limit)
	if err != nil {
		return fail(err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTOR\tACTION\tDETAILS")
	for _, a := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.CreatedAt.Format(time.DateTime), a.Actor, a.Action, a.Details)
	}
	tw.Flush()
	return subcommands.ExitSuccess
}

type dashboardCmd struct {
	interval time.Duration
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "live view of the largest accounts" }
func (*dashboardCmd) Usage() string {
	return `dashboard [-interval <duration>]

  Redraws the top ` + strconv.Itoa(dashboard.TopN) + ` accounts by balance until Enter or Ctrl-C.
`
}
func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.interval, "interval", 0, "refresh interval (default $DASHBOARD_INTERVAL_MS)")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	interval := c.interval
	if interval <= 0 {
		interval = e.cfg.DashboardInterval
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		stop()
	}()

	table := dashboard.Table(os.Stdout)
	err = dashboard.Run(ctx, e.engine, interval, func(rows []dashboard.Row, at time.Time) error {
		fmt.Fprint(os.Stdout, "\033[H\033[2J") // clear screen
		fmt.Fprintln(os.Stdout, "LIVE DB MONITOR (press Enter to exit)")
		return table(rows, at)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
