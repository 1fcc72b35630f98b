package ledger

import (
	"context"
	"fmt"

	"bank_system/internal/cache"
	"bank_system/internal/domain"
)

// Reads take no locks and may observe a slightly stale snapshot.

// ListClients returns every client
func (e *Engine) ListClients(ctx context.Context) ([]domain.Client, error) {
	return e.store.ListClients(ctx)
}

// GetClient looks a client up by id
func (e *Engine) GetClient(ctx context.Context, id uint) (domain.Client, error) {
	return e.store.GetClient(ctx, id)
}

// ClientOf resolves the owner of an account
func (e *Engine) ClientOf(ctx context.Context, acc domain.Account) (domain.Client, error) {
	return e.store.GetClient(ctx, acc.ClientID)
}

// GetAccount looks an account up by number
func (e *Engine) GetAccount(ctx context.Context, number string) (domain.Account, error) {
	number = normalizeNumber(number) // Cache keys use the canonical spelling
	var acc domain.Account
	if found, err := e.cache.Get(ctx, cache.AccountKey(number), &acc); err == nil && found {
		return acc, nil
	}
	acc, err := e.store.FindAccount(ctx, number, false)
	if err != nil {
		return domain.Account{}, err
	}
	_ = e.cache.Set(ctx, cache.AccountKey(number), acc, e.cacheTTL)
	return acc, nil
}

// ListAccounts returns every account with its owner's name
func (e *Engine) ListAccounts(ctx context.Context) ([]domain.AccountView, error) {
	return e.store.ListAccounts(ctx)
}

// ListClientAccounts returns the accounts owned by clientID
func (e *Engine) ListClientAccounts(ctx context.Context, clientID uint) ([]domain.Account, error) {
	if _, err := e.store.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return e.store.ListClientAccounts(ctx, clientID)
}

// GetHistory returns the transactions of number, oldest first. History
// outlives the account; only a number never seen fails with NotFound.
func (e *Engine) GetHistory(ctx context.Context, number string) ([]domain.Transaction, error) {
	number = normalizeNumber(number) // Cache keys use the canonical spelling
	var txs []domain.Transaction
	if found, err := e.cache.Get(ctx, cache.HistoryKey(number), &txs); err == nil && found {
		return txs, nil
	}
	txs, err := e.store.History(ctx, number)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		if _, err := e.store.FindAccount(ctx, number, false); err != nil {
			return nil, fmt.Errorf("history of %s: %w", number, err)
		}
	}
	_ = e.cache.Set(ctx, cache.HistoryKey(number), txs, e.cacheTTL)
	return txs, nil
}
