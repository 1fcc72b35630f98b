// Package ledger applies deposits, withdrawals, transfers and account
// lifecycle changes as atomic units of work over the account store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"bank_system/internal/cache"
	"bank_system/internal/domain"
	"bank_system/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultNumberAttempts = 16

// Auditor records committed actions. Implementations must not fail the caller.
type Auditor interface {
	Log(ctx context.Context, actor, action, details string)
}

// Options tune an Engine. Zero values pick the defaults.
type Options struct {
	NumberAttempts int
	Numbers        NumberGenerator
	Cache          cache.Cache
	CacheTTL       time.Duration
	Now            func() time.Time
}

// Engine is the ledger core
type Engine struct {
	store    *store.AccountStore
	audit    Auditor
	locks    *accountLocks
	numbers  NumberGenerator
	attempts int
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewEngine wires an engine over s, recording committed actions in audit
func NewEngine(s *store.AccountStore, audit Auditor, opts Options) *Engine {
	e := &Engine{
		store:    s,
		audit:    audit,
		locks:    newAccountLocks(),
		numbers:  opts.Numbers,
		attempts: opts.NumberAttempts,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		now:      opts.Now,
	}
	if e.numbers == nil {
		e.numbers = RandomNumbers{}
	}
	if e.attempts <= 0 {
		e.attempts = DefaultNumberAttempts
	}
	if e.cache == nil {
		e.cache = cache.Nop{}
	}
	if e.cacheTTL <= 0 {
		e.cacheTTL = time.Minute
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// CreateClient registers a client
func (e *Engine) CreateClient(ctx context.Context, actor domain.Actor, name string) (domain.Client, error) {
	if err := e.authorize(ctx, actor, domain.RoleOperator, domain.ActionCreateClient); err != nil {
		return domain.Client{}, err
	}
	name = strings.TrimSpace(name) // Surrounding blanks are not part of the name
	if name == "" {
		return domain.Client{}, fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)
	}
	c, err := e.store.CreateClient(ctx, name) // Single insert, no unit of work needed
	if err != nil {
		return domain.Client{}, err
	}
	e.committed(ctx, actor, domain.ActionCreateClient, fmt.Sprintf("client %d %q", c.ID, c.Name), logrus.Fields{
		"client_id": c.ID,
	})
	return c, nil
}

// CreateAccount opens a zero-balance account for clientID. Candidate
// numbers are retried while in use, up to the configured bound.
func (e *Engine) CreateAccount(ctx context.Context, actor domain.Actor, clientID uint, currency string) (domain.Account, error) {
	if err := e.authorize(ctx, actor, domain.RoleOperator, domain.ActionCreateAccount); err != nil {
		return domain.Account{}, err
	}
	currency = strings.ToUpper(strings.TrimSpace(currency)) // Free-form code, upper-cased
	if currency == "" {
		return domain.Account{}, fmt.Errorf("%w: currency is required", domain.ErrInvalidInput)
	}
	for attempt := 1; attempt <= e.attempts; attempt++ {
		acc := domain.Account{
			Number:   normalizeNumber(e.numbers.Next()), // Candidate number
			Currency: currency,                          // Account currency
			Balance:  decimal.Zero,                      // Accounts open empty
			ClientID: clientID,                          // Owning client
		}
		err := e.store.InTx(ctx, func(tx *store.AccountStore) error {
			// The owner must exist
			if _, err := tx.GetClient(ctx, clientID); err != nil {
				return err // Return error to rollback
			}
			// Numbers of live or deleted accounts are never handed out again
			inUse, err := tx.NumberInUse(ctx, acc.Number)
			if err != nil {
				return err // Return error to rollback
			}
			if inUse {
				return domain.ErrDuplicateAccountNumber // Retried below
			}
			return tx.InsertAccount(ctx, &acc) // The unique index still guards a racing insert
		})
		// Collision: log it and draw another candidate
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			logrus.WithFields(logrus.Fields{
				"number":  acc.Number,
				"attempt": attempt,
			}).Debug("Account number collision, retrying")
			continue
		}
		if err != nil {
			return domain.Account{}, err
		}
		e.committed(ctx, actor, domain.ActionCreateAccount,
			fmt.Sprintf("account %s (%s) for client %d", acc.Number, acc.Currency, clientID),
			logrus.Fields{"number": acc.Number, "client_id": clientID, "currency": acc.Currency})
		return acc, nil
	}
	return domain.Account{}, fmt.Errorf("%w after %d attempts", domain.ErrAccountNumberExhausted, e.attempts)
}

// Deposit credits amount to the account
func (e *Engine) Deposit(ctx context.Context, actor domain.Actor, number string, amount decimal.Decimal) (domain.Account, error) {
	if err := e.authorize(ctx, actor, domain.RoleOperator, domain.ActionDeposit); err != nil {
		return domain.Account{}, err
	}
	if !amount.IsPositive() {
		return domain.Account{}, domain.ErrInvalidAmount // Zero and negative amounts are rejected
	}
	number = normalizeNumber(number)
	unlock := e.locks.Lock(number) // Exclusive access to the account
	defer unlock()

	var acc domain.Account
	err := e.store.InTx(ctx, func(tx *store.AccountStore) error {
		var err error
		if acc, err = tx.FindAccount(ctx, number, true); err != nil {
			return err // Return error to rollback
		}
		acc.Balance = acc.Balance.Add(amount) // Credit the account
		if err := tx.UpdateBalance(ctx, &acc); err != nil {
			return err // Return error to rollback
		}
		// Record the movement in the same unit of work
		return tx.AppendTransactions(ctx, &domain.Transaction{
			CreatedAt:     e.now(),            // Movement time
			Kind:          domain.KindDeposit, // Credit
			Amount:        amount,             // Positive amount
			Note:          "Deposit",          // Fixed note
			AccountNumber: acc.Number,         // Stored number, not the caller's spelling
		})
	})
	if err != nil {
		return domain.Account{}, err
	}
	e.invalidate(ctx, number, acc.Number) // Drop cached reads after commit
	e.committed(ctx, actor, domain.ActionDeposit,
		fmt.Sprintf("%s %s to %s", amount, acc.Currency, acc.Number),
		logrus.Fields{"number": acc.Number, "amount": amount.String(), "balance": acc.Balance.String()})
	return acc, nil
}

// Withdraw debits amount from the account; the balance never goes negative
func (e *Engine) Withdraw(ctx context.Context, actor domain.Actor, number string, amount decimal.Decimal) (domain.Account, error) {
	if err := e.authorize(ctx, actor, domain.RoleOperator, domain.ActionWithdraw); err != nil {
		return domain.Account{}, err
	}
	if !amount.IsPositive() {
		return domain.Account{}, domain.ErrInvalidAmount // Zero and negative amounts are rejected
	}
	number = normalizeNumber(number)
	unlock := e.locks.Lock(number) // Exclusive access to the account
	defer unlock()

	var acc domain.Account
	err := e.store.InTx(ctx, func(tx *store.AccountStore) error {
		var err error
		if acc, err = tx.FindAccount(ctx, number, true); err != nil {
			return err // Return error to rollback
		}
		// Check sufficient funds against the locked row
		if acc.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", domain.ErrInsufficientFunds, acc.Balance, amount)
		}
		acc.Balance = acc.Balance.Sub(amount) // Debit the account
		if err := tx.UpdateBalance(ctx, &acc); err != nil {
			return err // Return error to rollback
		}
		// Record the movement in the same unit of work
		return tx.AppendTransactions(ctx, &domain.Transaction{
			CreatedAt:     e.now(),             // Movement time
			Kind:          domain.KindWithdraw, // Debit
			Amount:        amount.Neg(),        // Signed negative amount
			Note:          "Withdraw",          // Fixed note
			AccountNumber: acc.Number,          // Stored number, not the caller's spelling
		})
	})
	if err != nil {
		return domain.Account{}, err
	}
	e.invalidate(ctx, number, acc.Number) // Drop cached reads after commit
	e.committed(ctx, actor, domain.ActionWithdraw,
		fmt.Sprintf("%s %s from %s", amount, acc.Currency, acc.Number),
		logrus.Fields{"number": acc.Number, "amount": amount.String(), "balance": acc.Balance.String()})
	return acc, nil
}

// Transfer moves amount between two accounts of the same currency. Both
// balances and both linked transactions commit together or not at all.
func (e *Engine) Transfer(ctx context.Context, actor domain.Actor, from, to string, amount decimal.Decimal) (domain.Account, domain.Account, error) {
	if err := e.authorize(ctx, actor, domain.RoleOperator, domain.ActionTransfer); err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	if !amount.IsPositive() {
		return domain.Account{}, domain.Account{}, domain.ErrInvalidAmount // Zero and negative amounts are rejected
	}
	from, to = normalizeNumber(from), normalizeNumber(to)
	// Prevent transferring to self
	if from == to {
		return domain.Account{}, domain.Account{}, domain.ErrSameAccount
	}
	unlock := e.locks.Lock(from, to) // Both accounts, in sorted order
	defer unlock()

	var src, dst domain.Account
	ref := uuid.NewString() // Links the two legs
	err := e.store.InTx(ctx, func(tx *store.AccountStore) error {
		// rows are locked in the same sorted order as the mutexes
		first, second := from, to
		if second < first {
			first, second = second, first
		}
		a, err := tx.FindAccount(ctx, first, true)
		if err != nil {
			return err // Return error to rollback
		}
		b, err := tx.FindAccount(ctx, second, true)
		if err != nil {
			return err // Return error to rollback
		}
		// Two spellings the store collates together name one account
		if a.ID == b.ID {
			return domain.ErrSameAccount
		}
		if first == from {
			src, dst = a, b // Sender was locked first
		} else {
			src, dst = b, a
		}

		// Both legs must be in one currency
		if src.Currency != dst.Currency {
			return fmt.Errorf("%w: %s is %s, %s is %s", domain.ErrCurrencyMismatch, src.Number, src.Currency, dst.Number, dst.Currency)
		}
		// Check sufficient funds against the locked row
		if src.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, requested %s", domain.ErrInsufficientFunds, src.Balance, amount)
		}

		src.Balance = src.Balance.Sub(amount) // Deduct from sender
		dst.Balance = dst.Balance.Add(amount) // Add to recipient
		if err := tx.UpdateBalance(ctx, &src); err != nil {
			return err // Return error to rollback
		}
		if err := tx.UpdateBalance(ctx, &dst); err != nil {
			return err // Return error to rollback
		}
		now := e.now() // Both legs share one timestamp
		return tx.AppendTransactions(ctx,
			&domain.Transaction{
				CreatedAt:     now,                    // Movement time
				Kind:          domain.KindTransferOut, // Debit leg
				Amount:        amount.Neg(),           // Signed negative amount
				Note:          "To " + dst.Number,     // Counterparty
				AccountNumber: src.Number,             // Sender
				TransferRef:   ref,                    // Shared reference
			},
			&domain.Transaction{
				CreatedAt:     now,                   // Movement time
				Kind:          domain.KindTransferIn, // Credit leg
				Amount:        amount,                // Positive amount
				Note:          "From " + src.Number,  // Counterparty
				AccountNumber: dst.Number,            // Recipient
				TransferRef:   ref,                   // Shared reference
			},
		)
	})
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}
	e.invalidate(ctx, from, to, src.Number, dst.Number) // Drop cached reads of both accounts
	e.committed(ctx, actor, domain.ActionTransfer,
		fmt.Sprintf("%s %s from %s to %s (ref %s)", amount, src.Currency, src.Number, dst.Number, ref),
		logrus.Fields{"from": src.Number, "to": dst.Number, "amount": amount.String(), "ref": ref})
	return src, dst, nil
}

// DeleteAccount removes a zero-balance account. Admin only. The history
// of the account is kept.
func (e *Engine) DeleteAccount(ctx context.Context, actor domain.Actor, number string) error {
	if err := e.authorize(ctx, actor, domain.RoleAdmin, domain.ActionDeleteAccount); err != nil {
		return err
	}
	number = normalizeNumber(number)
	unlock := e.locks.Lock(number) // Exclusive access to the account
	defer unlock()

	var acc domain.Account
	err := e.store.InTx(ctx, func(tx *store.AccountStore) error {
		var err error
		if acc, err = tx.FindAccount(ctx, number, true); err != nil {
			return err // Return error to rollback
		}
		// Only an empty account may go
		if !acc.Balance.IsZero() {
			return fmt.Errorf("%w: %s holds %s %s", domain.ErrNonZeroBalance, acc.Number, acc.Balance, acc.Currency)
		}
		return tx.DeleteAccount(ctx, acc.Number) // Transactions are left in place
	})
	if err != nil {
		return err
	}
	e.invalidate(ctx, number, acc.Number) // Drop cached reads after commit
	e.committed(ctx, actor, domain.ActionDeleteAccount, "account "+acc.Number, logrus.Fields{"number": acc.Number})
	return nil
}

// authorize checks the actor's role. Denials are audited.
func (e *Engine) authorize(ctx context.Context, actor domain.Actor, role domain.Role, action string) error {
	err := actor.Require(role) // Admin satisfies every role
	if err == nil {
		return nil // Allowed
	}
	name := actor.Username // Who was refused
	if name == "" {
		name = "anonymous" // Zero actor
	}
	e.audit.Log(ctx, name, domain.ActionAccessDenied, action+": "+err.Error()) // Denials are audited too
	logrus.WithFields(logrus.Fields{
		"actor":  name,
		"action": action,
	}).Warn("Access denied")
	return err
}

// committed logs and audits a successful mutation
func (e *Engine) committed(ctx context.Context, actor domain.Actor, action, details string, fields logrus.Fields) {
	fields["actor"] = actor.Username                             // Who
	fields["action"] = action                                    // What
	logrus.WithFields(fields).Info("Ledger operation committed") // Structured log line
	e.audit.Log(ctx, actor.Username, action, details)            // Durable journal entry
}

// invalidate drops cached reads of the given accounts
func (e *Engine) invalidate(ctx context.Context, numbers ...string) {
	keys := make([]string, 0, 2*len(numbers)) // Two keys per account
	// Deduplicate aliases that normalized to the same number
	for _, n := range slices.Compact(slices.Sorted(slices.Values(numbers))) {
		keys = append(keys, cache.AccountKey(n), cache.HistoryKey(n)) // Account and history entries
	}
	if err := e.cache.Delete(ctx, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("Cache invalidation failed") // Entries expire on their TTL
	}
}

// normalizeNumber is the canonical spelling of an account number: numbers
// are issued upper-case, and lookups, locks and cache keys all use it.
func normalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
