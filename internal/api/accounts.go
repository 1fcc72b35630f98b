package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"bank_system/internal/ledger"     // Ledger engine
	"bank_system/internal/middleware" // Actor lookup

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
)

// CreateClientRequest registers a client
type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAccountRequest opens an account
type CreateAccountRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// AmountRequest carries a deposit or withdrawal. Amounts may be sent as
// JSON strings to keep every digit.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest represents a transfer request
type TransferRequest struct {
	From   string          `json:"from" binding:"required"` // Source account number
	To     string          `json:"to" binding:"required"`   // Destination account number
	Amount decimal.Decimal `json:"amount"`                  // Transfer amount
}

// ListClientsHandler returns every client
func ListClientsHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		clients, err := engine.ListClients(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients})
	}
}

// CreateClientHandler registers a client
func CreateClientHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		client, err := engine.CreateClient(c.Request.Context(), middleware.ActorFrom(c), req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, client)
	}
}

// ListClientAccountsHandler returns the accounts of one client
func ListClientAccountsHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c)
			return
		}
		accounts, err := engine.ListClientAccounts(c.Request.Context(), uint(id))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": accounts})
	}
}

// ListAccountsHandler returns every account with its owner's name
func ListAccountsHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := engine.ListAccounts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": views})
	}
}

// CreateAccountHandler opens a zero-balance account
func CreateAccountHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		acc, err := engine.CreateAccount(c.Request.Context(), middleware.ActorFrom(c), req.ClientID, req.Currency)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, acc)
	}
}

// GetAccountHandler returns one account
func GetAccountHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := engine.GetAccount(c.Request.Context(), c.Param("number"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, acc)
	}
}

// DeleteAccountHandler removes a zero-balance account. Admin only.
func DeleteAccountHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.DeleteAccount(c.Request.Context(), middleware.ActorFrom(c), c.Param("number")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DepositHandler credits an account
func DepositHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		acc, err := engine.Deposit(c.Request.Context(), middleware.ActorFrom(c), c.Param("number"), req.Amount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, acc)
	}
}

// WithdrawHandler debits an account
func WithdrawHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		acc, err := engine.Withdraw(c.Request.Context(), middleware.ActorFrom(c), c.Param("number"), req.Amount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, acc)
	}
}

// TransferHandler moves funds between two accounts
func TransferHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		src, dst, err := engine.Transfer(c.Request.Context(), middleware.ActorFrom(c), req.From, req.To, req.Amount)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"from": src, "to": dst})
	}
}

// GetTransactionHistoryHandler returns the history of an account, oldest first
func GetTransactionHistoryHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		txs, err := engine.GetHistory(c.Request.Context(), c.Param("number"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txs})
	}
}
