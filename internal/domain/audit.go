package domain

import "time"

// Audit action tags
const (
	ActionCreateClient   = "CREATE_CLIENT"
	ActionCreateAccount  = "CREATE_ACCOUNT"
	ActionDeposit        = "DEPOSIT"
	ActionWithdraw       = "WITHDRAW"
	ActionTransfer       = "TRANSFER"
	ActionDeleteAccount  = "DELETE_ACCOUNT"
	ActionRegisterUser   = "REGISTER_USER"
	ActionLogin          = "LOGIN"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionBootstrapAdmin = "BOOTSTRAP_ADMIN"
	ActionAccessDenied   = "ACCESS_DENIED"
)

// AuditEntry Model. Append-only.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Actor     string    `gorm:"size:64;not null" json:"actor"`
	Action    string    `gorm:"size:32;not null" json:"action"`
	Details   string    `gorm:"size:1024" json:"details"`
}
