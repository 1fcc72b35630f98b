// Package session turns credentials into an Actor: login with signed
// tokens, token authentication, registration and password rotation.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bank_system/internal/auth"
	"bank_system/internal/domain"

	"github.com/sirupsen/logrus"
)

// Auditor records session events
type Auditor interface {
	Log(ctx context.Context, actor, action, details string)
}

// Manager issues and verifies session tokens over the user registry
type Manager struct {
	users  *auth.Store
	audit  Auditor
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a Manager. A non-positive ttl defaults to 24 hours.
func NewManager(users *auth.Store, audit Auditor, secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session: empty signing secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{users: users, audit: audit, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Login checks the credentials and returns the actor with a signed token
func (m *Manager) Login(ctx context.Context, username, password string) (domain.Actor, string, error) {
	user, err := m.users.Login(ctx, username, password)
	if err != nil {
		logrus.WithField("username", auth.NormalizeUsername(username)).Info("Login failed")
		return domain.Actor{}, "", err
	}
	actor := user.Actor()
	token, err := signToken(actor, m.secret, m.now(), m.ttl)
	if err != nil {
		return domain.Actor{}, "", fmt.Errorf("sign token: %w", err)
	}
	m.audit.Log(ctx, actor.Username, domain.ActionLogin, "")
	return actor, token, nil
}

// Authenticate verifies token and reloads its user, so a role change or
// removal applies to the next request. It also reports whether the user
// still has to rotate the password. Every failure is ErrAuthFailure.
func (m *Manager) Authenticate(ctx context.Context, token string) (domain.Actor, bool, error) {
	claims, err := parseToken(token, m.secret, m.now())
	if err != nil {
		return domain.Actor{}, false, fmt.Errorf("%w: %v", domain.ErrAuthFailure, err)
	}
	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Actor{}, false, domain.ErrAuthFailure
		}
		return domain.Actor{}, false, err
	}
	if user.Username != claims.Username {
		return domain.Actor{}, false, domain.ErrAuthFailure
	}
	return user.Actor(), user.MustChangePassword, nil
}

// Register adds a user. Admin only.
func (m *Manager) Register(ctx context.Context, actor domain.Actor, username, password string, role domain.Role) (domain.User, error) {
	if err := actor.Require(domain.RoleAdmin); err != nil {
		m.audit.Log(ctx, actorName(actor), domain.ActionAccessDenied, domain.ActionRegisterUser+": "+err.Error())
		return domain.User{}, err
	}
	user, err := m.users.Register(ctx, username, password, role)
	if err != nil {
		return domain.User{}, err
	}
	logrus.WithFields(logrus.Fields{
		"actor":    actor.Username,
		"username": user.Username,
		"role":     user.Role,
	}).Info("User registered")
	m.audit.Log(ctx, actor.Username, domain.ActionRegisterUser, fmt.Sprintf("%s (%s)", user.Username, user.Role))
	return user, nil
}

// ChangePassword rotates the password of the actor itself
func (m *Manager) ChangePassword(ctx context.Context, actor domain.Actor, oldPassword, newPassword string) error {
	if actor.Username == "" {
		return fmt.Errorf("%w: no authenticated user", domain.ErrAuthorization)
	}
	if _, err := m.users.ChangePassword(ctx, actor.Username, oldPassword, newPassword); err != nil {
		return err
	}
	m.audit.Log(ctx, actor.Username, domain.ActionChangePassword, "")
	return nil
}

// Bootstrap provisions the initial administrator when no user exists.
// It reports whether a user was created.
func (m *Manager) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	exists, err := m.users.HasAnyUser(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	user, err := m.users.Provision(ctx, username, password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrDuplicateUser) {
		return false, nil // another process got there first
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	logrus.WithField("username", user.Username).
		Warn("No users found: provisioned bootstrap administrator with the well-known password, change it on first login")
	m.audit.Log(ctx, domain.SystemActor, domain.ActionBootstrapAdmin, user.Username)
	return true, nil
}

func actorName(a domain.Actor) string {
	if a.Username == "" {
		return "anonymous"
	}
	return a.Username
}
