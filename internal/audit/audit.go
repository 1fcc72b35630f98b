// Package audit is the append-only journal of who did what.
package audit

import (
	"context"
	"fmt"
	"unicode/utf8"

	"bank_system/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultRecent = 20
	MaxRecent     = 500
)

// Log writes audit entries. Writes are best-effort: they run outside the
// ledger's unit of work and a failure never reaches the caller.
type Log struct {
	db *gorm.DB
}

// New returns a Log backed by db
func New(db *gorm.DB) *Log {
	return &Log{db: db}
}

// Log records action performed by actor
func (l *Log) Log(ctx context.Context, actor, action, details string) {
	entry := domain.AuditEntry{Actor: actor, Action: action, Details: truncate(details, 1024)}
	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"actor":  actor,
			"action": action,
			"error":  err.Error(),
		}).Warn("Audit write failed")
	}
}

// GetRecent returns the n most recent entries, newest first
func (l *Log) GetRecent(ctx context.Context, n int) ([]domain.AuditEntry, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > MaxRecent {
		n = MaxRecent
	}
	var entries []domain.AuditEntry
	if err := l.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(n).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("recent audit entries: %w", err)
	}
	return entries, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n-- // Do not split a multi-byte rune
	}
	return s[:n]
}
