package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bank_system/internal/dashboard"
	"bank_system/internal/domain"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var writeCommands = []subcommands.Command{
	&addClientCmd{},
	&openAccountCmd{},
	&moveCmd{name: "deposit"},
	&moveCmd{name: "withdraw"},
	&transferCmd{},
	&deleteAccountCmd{},
	&passwdCmd{},
}

// authed opens the environment and logs the operator in
func authed(ctx context.Context, cred *credentials) (*env, domain.Actor, error) {
	e, err := openEnv()
	if err != nil {
		return nil, domain.Actor{}, err
	}
	actor, err := cred.actor(ctx, e)
	if err != nil {
		return nil, domain.Actor{}, err
	}
	return e, actor, nil
}

func printAccount(a domain.Account) {
	fmt.Printf("%s  %s\n", a.Number, dashboard.FormatMoney(a.Balance, a.Currency))
}

type addClientCmd struct{ credentials }

func (*addClientCmd) Name() string     { return "add-client" }
func (*addClientCmd) Synopsis() string { return "register a new client" }
func (*addClientCmd) Usage() string    { return "add-client -user <u> -password <p> <name>\n" }

func (c *addClientCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: the client name is required.")
		return subcommands.ExitUsageError
	}
	e, actor, err := authed(ctx, &c.credentials)
	if err != nil {
		return fail(err)
	}
	client, err := e.engine.CreateClient(ctx, actor, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("client %d: %s\n", client.ID, client.Name)
	return subcommands.ExitSuccess
}

type openAccountCmd struct {
	credentials
	client   uint
	currency string
}

func (*openAccountCmd) Name() string     { return "open-account" }
func (*openAccountCmd) Synopsis() string { return "open a zero-balance account for a client" }
func (*openAccountCmd) Usage() string {
	return "open-account -user <u> -password <p> -client <id> -currency <code>\n"
}
func (c *openAccountCmd) SetFlags(f *flag.FlagSet) {
	c.credentials.SetFlags(f)
	f.UintVar(&c.client, "client", 0, "owning client id (required)")
	f.StringVar(&c.currency, "currency", "", "currency code (required)")
}

func (c *openAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, actor, err := authed(ctx, &c.credentials)
	if err != nil {
		return fail(err)
	}
	acc, err := e.engine.CreateAccount(ctx, actor, c.client, c.currency)
	if err != nil {
		return fail(err)
	}
	printAccount(acc)
	return subcommands.ExitSuccess
}

// moveCmd is deposit or withdraw
type moveCmd struct {
	credentials
	name string
}

func (c *moveCmd) Name() string     { return c.name }
func (c *moveCmd) Synopsis() string { return c.name + " an amount on an account" }
func (c *moveCmd) Usage() string {
	return c.name + " -user <u> -password <p> <account-number> <amount>\n"
}

func (c *moveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: an account number and an amount are required.")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	e, actor, err := authed(ctx, &c.credentials)
	if err != nil {
		return fail(err)
	}
	move := e.engine.Deposit
	if c.name == "withdraw" {
		move = e.engine.Withdraw
	}
	acc, err := move(ctx, actor, f.Arg(0), amount)
	if err != nil {
		return fail(err)
	}
	printAccount(acc)
	return subcommands.ExitSuccess
}

type transferCmd struct{ credentials }

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move an amount between two accounts" }
func (*transferCmd) Usage() string {
	return "transfer -user <u> -password <p> <from> <to> <amount>\n"
}

func (c *transferCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: source, destination and amount are required.")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q\n", f.Arg(2))
		return subcommands.ExitUsageError
	}
	e, actor, err := authed(ctx, &c.credentials)
	if err != nil {
		return fail(err)
	}
	src, dst, err := e.engine.Transfer(ctx, actor, f.Arg(0), f.Arg(1), amount)
	if err != nil {
		return fail(err)
	}
	printAccount(src)
	printAccount(dst)
	return subcommands.ExitSuccess
}

type deleteAccountCmd struct{ credentials }

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete a zero-balance account (admin)" }
func (*deleteAccountCmd) Usage() string {
	return "delete-account -user <u> -password <p> <account-number>\n"
}

func (c *deleteAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: the account number is required.")
		return subcommands.ExitUsageError
	}
	e, actor, err := authed(ctx, &c.credentials)
	if err != nil {
		return fail(err)
	}
	if err := e.engine.DeleteAccount(ctx, actor, f.Arg(0)); err != nil {
		return fail(err)
	}
	fmt.Printf("deleted %s, its history is kept\n", f.Arg(0))
	return subcommands.ExitSuccess
}

type passwdCmd struct {
	credentials
	newPassword string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change your password" }
func (*passwdCmd) Usage() string {
	return "passwd -user <u> -password <old> -new <new>\n"
}
func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	c.credentials.SetFlags(f)
	f.StringVar(&c.newPassword, "new", "", "new password, 8-72 characters (required)")
}

func (c *passwdCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv()
	if err != nil {
		return fail(err)
	}
	user, err := e.users.ChangePassword(ctx, c.user, c.password, c.newPassword)
	if err != nil {
		return fail(err)
	}
	e.audit.Log(ctx, user.Username, domain.ActionChangePassword, "bankctl")
	fmt.Println("password changed for " + user.Username)
	return subcommands.ExitSuccess
}
