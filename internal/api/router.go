package api

import (
	"net/http"

	"bank_system/internal/audit"
	"bank_system/internal/ledger"
	"bank_system/internal/middleware"
	"bank_system/internal/session"

	"github.com/gin-gonic/gin"
)

// Services are the collaborators the HTTP surface drives
type Services struct {
	Engine   *ledger.Engine
	Sessions *session.Manager
	Audit    *audit.Log
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/user/login", LoginHandler(s.Sessions)) // Login endpoint

	// Everything else requires a session
	authed := r.Group("/", middleware.JWTAuthMiddleware(s.Sessions))
	adminOnly := middleware.AdminOnlyMiddleware(s.Audit)

	authed.POST(middleware.PasswordChangePath, ChangePasswordHandler(s.Sessions))
	authed.POST("/user", adminOnly, RegisterHandler(s.Sessions))

	authed.GET("/clients", ListClientsHandler(s.Engine))
	authed.POST("/clients", CreateClientHandler(s.Engine))
	authed.GET("/clients/:id/accounts", ListClientAccountsHandler(s.Engine))

	authed.GET("/accounts", ListAccountsHandler(s.Engine))
	authed.POST("/accounts", CreateAccountHandler(s.Engine))
	authed.GET("/accounts/:number", GetAccountHandler(s.Engine))
	authed.DELETE("/accounts/:number", adminOnly, DeleteAccountHandler(s.Engine))
	authed.POST("/accounts/:number/deposit", DepositHandler(s.Engine))
	authed.POST("/accounts/:number/withdraw", WithdrawHandler(s.Engine))
	authed.GET("/accounts/:number/transactions", GetTransactionHistoryHandler(s.Engine))
	authed.POST("/transfer", TransferHandler(s.Engine))

	authed.GET("/admin/audit", adminOnly, ListAuditHandler(s.Audit))
	return r
}
