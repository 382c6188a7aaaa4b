package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Session is the single durable record of the subsystem: the currently valid
// refresh token of a live session. The token value is the primary key; there
// is no user column because each record is self-identifying.
type Session struct {
	Token string `gorm:"primaryKey;size:500"`
}

func (Session) TableName() string { return "sessions" }

// SessionStore persists refresh tokens. Replace must behave as a conditional
// update keyed on the old value so that two concurrent rotations of the same
// stale token cannot both succeed.
type SessionStore interface {
	Put(ctx context.Context, token string) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Replace(ctx context.Context, oldToken, newToken string) error
	Delete(ctx context.Context, token string) error
}

type gormSessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db}
}

func (s *gormSessionStore) Put(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Create(&Session{Token: token}).Error; err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *gormSessionStore) FindByToken(ctx context.Context, token string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).First(&sess, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &sess, nil
}

// Replace rotates the stored value. The WHERE clause on the old token makes
// this a compare-and-swap: when another request already consumed the token,
// zero rows match and the caller gets ErrSessionNotFound.
func (s *gormSessionStore) Replace(ctx context.Context, oldToken, newToken string) error {
	res := s.db.WithContext(ctx).
		Model(&Session{}).
		Where("token = ?", oldToken).
		Update("token", newToken)
	if res.Error != nil {
		return fmt.Errorf("replace session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete is idempotent: removing an absent token leaves the same end state
// as removing a present one, so it is not an error.
func (s *gormSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
