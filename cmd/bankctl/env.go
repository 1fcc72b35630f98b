package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bank_system/internal/audit"
	"bank_system/internal/auth"
	"bank_system/internal/cache"
	"bank_system/internal/config"
	"bank_system/internal/db"
	"bank_system/internal/domain"
	"bank_system/internal/ledger"
	"bank_system/internal/store"
)

// env holds the services a command runs against
type env struct {
	cfg    *config.Config
	engine *ledger.Engine
	audit  *audit.Log
	users  *auth.Store
}

func openEnv() (*env, error) {
	cfg := config.LoadConfig()
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}
	users, err := auth.NewStore(gdb, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	// Same cache as the server, so writes made here invalidate its reads
	readCache, err := cache.FromConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	journal := audit.New(gdb)
	engine := ledger.NewEngine(store.NewAccountStore(gdb), journal, ledger.Options{
		NumberAttempts: cfg.AccountNumberAttempts,
		Cache:          readCache,
		CacheTTL:       cfg.CacheTTL,
	})
	return &env{cfg: cfg, engine: engine, audit: journal, users: users}, nil
}

// credentials are shared by every mutating command
type credentials struct {
	user     string
	password string
}

func (c *credentials) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", os.Getenv("BANKCTL_USER"), "username (default $BANKCTL_USER)")
	f.StringVar(&c.password, "password", os.Getenv("BANKCTL_PASSWORD"), "password (default $BANKCTL_PASSWORD)")
}

// actor logs the operator in. Accounts still waiting for a password
// rotation are refused.
func (c *credentials) actor(ctx context.Context, e *env) (domain.Actor, error) {
	user, err := e.users.Login(ctx, c.user, c.password)
	if err != nil {
		return domain.Actor{}, err
	}
	if user.MustChangePassword {
		return domain.Actor{}, fmt.Errorf("%w: change the password of %s first", domain.ErrAuthorization, user.Username)
	}
	e.audit.Log(ctx, user.Username, domain.ActionLogin, "bankctl")
	return user.Actor(), nil
}
