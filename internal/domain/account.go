package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact fixed-point amounts
)

// Account Model. The owning client is referenced by ClientID only.
type Account struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                       // Primary key
	Number    string          `gorm:"size:32;uniqueIndex;not null" json:"number"` // Globally unique account number
	Currency  string          `gorm:"size:8;not null" json:"currency"`            // Free-form currency code
	Balance   decimal.Decimal `gorm:"type:varchar(40);not null" json:"balance"`   // Stored as text, never as a float
	ClientID  uint            `gorm:"index;not null" json:"client_id"`            // Owning client
	CreatedAt time.Time       `json:"created_at"`                                 // Creation time
	UpdatedAt time.Time       `json:"updated_at"`                                 // Last balance change
}

// AccountView is an account joined with the name of its owner, for reporting.
type AccountView struct {
	Account
	ClientName string `json:"client_name"`
}
