package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"  // Regular expressions
	"strings" // String manipulation

	"bank_system/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

// Store is the user registry
type Store struct {
	db        *gorm.DB
	cost      int
	dummyHash []byte // compared against when the username is unknown
}

// NewStore builds a Store hashing with the given bcrypt cost
func NewStore(db *gorm.DB, cost int) (*Store, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Store{db: db, cost: cost, dummyHash: dummy}, nil
}

// NormalizeUsername lower-cases and trims a username
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks the username shape
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-32 letters, digits or underscores", domain.ErrInvalidInput)
	}
	return nil
}

// ValidatePassword checks the password length; bcrypt ignores bytes past 72
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return fmt.Errorf("%w: password must be 8-72 characters", domain.ErrInvalidInput)
	}
	return nil
}

// HasAnyUser reports whether at least one user is registered
func (s *Store) HasAnyUser(ctx context.Context) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// Register validates and stores a new user
func (s *Store) Register(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	username = NormalizeUsername(username)
	if err := ValidateUsername(username); err != nil {
		return domain.User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return domain.User{}, err
	}
	return s.create(ctx, username, password, role, false)
}

// Provision stores a user without the shape checks. Used for the
// bootstrap administrator only.
func (s *Store) Provision(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	return s.create(ctx, NormalizeUsername(username), password, role, true)
}

func (s *Store) create(ctx context.Context, username, password string, role domain.Role, mustChange bool) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if count > 0 {
		return domain.User{}, domain.ErrDuplicateUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, PasswordHash: string(hash), Role: role, MustChangePassword: mustChange}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrDuplicateUser // lost a race with a concurrent registration
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials. Unknown users and wrong passwords fail
// with the same error after the same amount of hashing work.
func (s *Store) Login(ctx context.Context, username, password string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", NormalizeUsername(username)).First(&user).Error
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrAuthFailure
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrAuthFailure
	}
	return user, nil
}

// ChangePassword replaces the password of username after verifying the
// old one, and clears the forced-rotation flag
func (s *Store) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (domain.User, error) {
	user, err := s.Login(ctx, username, oldPassword)
	if err != nil {
		return domain.User{}, err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return domain.User{}, err
	}
	if oldPassword == newPassword {
		return domain.User{}, fmt.Errorf("%w: new password must differ from the old one", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password_hash":        string(hash),
		"must_change_password": false,
	}).Error; err != nil {
		return domain.User{}, fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	return user, nil
}

// GetByID loads a user
func (s *Store) GetByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
