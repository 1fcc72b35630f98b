package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the closed set of movements recorded against an account.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdraw    TransactionKind = "WITHDRAW"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
)

// Valid reports whether k is one of the four known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdraw, KindTransferOut, KindTransferIn:
		return true
	}
	return false
}

// Credit reports whether the kind increases the balance.
func (k TransactionKind) Credit() bool {
	switch k {
	case KindDeposit, KindTransferIn:
		return true
	case KindWithdraw, KindTransferOut:
		return false
	}
	return false
}

// Transaction Model. Rows are written once and never updated; they outlive
// the account they were recorded against.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                         // Primary key
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`                      // Timestamp of the movement
	Kind          TransactionKind `gorm:"size:16;not null" json:"kind"`                 // Movement kind
	Amount        decimal.Decimal `gorm:"type:varchar(40);not null" json:"amount"`      // Signed amount
	Note          string          `gorm:"size:255" json:"note"`                         // Free text
	AccountNumber string          `gorm:"size:32;index;not null" json:"account_number"` // Owning account number
	TransferRef   string          `gorm:"size:36;index" json:"transfer_ref,omitempty"`  // Shared by both legs of a transfer
}
