// Package store persists clients, accounts and their transactions.
package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"bank_system/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact money arithmetic
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking
)

// AccountStore is the durable keyed storage of clients, accounts and
// transactions. A store returned by InTx is bound to one database
// transaction and must not escape the callback.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore wraps db
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db} // Not bound to a transaction
}

// InTx runs fn as a single unit of work. Any error returned by fn rolls
// every write back.
func (s *AccountStore) InTx(ctx context.Context, fn func(tx *AccountStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccountStore{db: tx}) // Return error to rollback
	})
}

// CreateClient inserts a new client
func (s *AccountStore) CreateClient(ctx context.Context, name string) (domain.Client, error) {
	c := domain.Client{Name: name} // New client record
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err) // Return on error
	}
	return c, nil // ID is filled in by Create
}

// GetClient looks a client up by id
func (s *AccountStore) GetClient(ctx context.Context, id uint) (domain.Client, error) {
	var c domain.Client // Client to load
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return domain.Client{}, notFound(err, "client %d", id) // Missing or failed lookup
	}
	return c, nil
}

// ListClients returns every client ordered by id
func (s *AccountStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client // Slice to hold clients
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err) // Return on error
	}
	return clients, nil
}

// FindAccount looks an account up by its number. With forUpdate the row
// is locked until the enclosing transaction ends (a no-op on SQLite,
// which locks the whole database for writers instead).
func (s *AccountStore) FindAccount(ctx context.Context, number string, forUpdate bool) (domain.Account, error) {
	q := s.db.WithContext(ctx) // Base query
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"}) // SELECT ... FOR UPDATE
	}
	var a domain.Account // Account to load
	if err := q.Where("number = ?", number).First(&a).Error; err != nil {
		return domain.Account{}, notFound(err, "account %s", number) // Missing or failed lookup
	}
	return a, nil
}

// InsertAccount stores a new account. A number already held by another
// account fails with domain.ErrDuplicateAccountNumber.
func (s *AccountStore) InsertAccount(ctx context.Context, a *domain.Account) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		// Unique index on number rejected the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, a.Number)
		}
		return fmt.Errorf("insert account: %w", err) // Return on error
	}
	return nil
}

// UpdateBalance writes the balance of a
func (s *AccountStore) UpdateBalance(ctx context.Context, a *domain.Account) error {
	// Update only the balance column of the row
	res := s.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", a.ID).
		Update("balance", a.Balance)
	if res.Error != nil {
		return fmt.Errorf("update balance: %w", res.Error) // Return on error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, a.Number) // Row vanished
	}
	return nil
}

// DeleteAccount removes the account record. Its transactions stay.
func (s *AccountStore) DeleteAccount(ctx context.Context, number string) error {
	res := s.db.WithContext(ctx).Where("number = ?", number).Delete(&domain.Account{}) // Hard delete
	if res.Error != nil {
		return fmt.Errorf("delete account: %w", res.Error) // Return on error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, number) // Nothing to delete
	}
	return nil
}

// NumberInUse reports whether an account holds number or any retained
// transaction references it, so deleted numbers are never handed out again.
func (s *AccountStore) NumberInUse(ctx context.Context, number string) (bool, error) {
	var n int64 // Matching row count
	// Live accounts first
	if err := s.db.WithContext(ctx).Model(&domain.Account{}).Where("number = ?", number).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count accounts: %w", err) // Return on error
	}
	if n > 0 {
		return true, nil // Held by a live account
	}
	// Then the history left behind by deleted accounts
	if err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Where("account_number = ?", number).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count transactions: %w", err) // Return on error
	}
	return n > 0, nil // Referenced by retained history
}

// AppendTransactions writes txs in order
func (s *AccountStore) AppendTransactions(ctx context.Context, txs ...*domain.Transaction) error {
	for _, t := range txs {
		if !t.Kind.Valid() {
			return fmt.Errorf("%w: transaction kind %q", domain.ErrInvalidInput, t.Kind) // Unknown kind
		}
		if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err) // Return on error
		}
	}
	return nil
}

// History returns the transactions recorded against number, oldest first
func (s *AccountStore) History(ctx context.Context, number string) ([]domain.Transaction, error) {
	var txs []domain.Transaction // Slice to hold transactions
	// id breaks ties between movements in the same instant
	if err := s.db.WithContext(ctx).
		Where("account_number = ?", number).
		Order("created_at asc, id asc").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("history: %w", err) // Return on error
	}
	return txs, nil
}

// HistorySum returns the signed sum of the transactions of number
func (s *AccountStore) HistorySum(ctx context.Context, number string) (decimal.Decimal, error) {
	txs, err := s.History(ctx, number) // Every movement of the account
	if err != nil {
		return decimal.Zero, err // Return on error
	}
	sum := decimal.Zero // Running total
	for _, t := range txs {
		sum = sum.Add(t.Amount) // Amounts are signed
	}
	return sum, nil
}

// ListAccounts returns every account joined with its owner's name
func (s *AccountStore) ListAccounts(ctx context.Context) ([]domain.AccountView, error) {
	var views []domain.AccountView // Slice to hold joined rows
	// LEFT JOIN keeps accounts whose client row is missing
	if err := s.db.WithContext(ctx).
		Model(&domain.Account{}).
		Select("accounts.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = accounts.client_id").
		Order("accounts.id").
		Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err) // Return on error
	}
	return views, nil
}

// ListClientAccounts returns the accounts owned by clientID
func (s *AccountStore) ListClientAccounts(ctx context.Context, clientID uint) ([]domain.Account, error) {
	var accounts []domain.Account // Slice to hold accounts
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list client accounts: %w", err) // Return on error
	}
	return accounts, nil
}

// notFound maps gorm.ErrRecordNotFound to domain.ErrNotFound
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{domain.ErrNotFound}, args...)...) // No such row
	}
	return fmt.Errorf("lookup "+format+": %w", append(args, err)...) // Database failure
}
