// Package adapters provides repository implementations for the brokerage feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invest_backend/internal/feature/brokerage/domain/entity"
	"invest_backend/internal/feature/brokerage/usecase"
)

// tokenMySQL is the MySQL implementation of the CredentialRepository interface.
// The table holds at most one row: the current access token.
type tokenMySQL struct {
	db *gorm.DB
}

var _ usecase.CredentialRepository = (*tokenMySQL)(nil)

// NewTokenRepository creates a new tokenMySQL repository with the given DB connection.
func NewTokenRepository(db *gorm.DB) *tokenMySQL {
	return &tokenMySQL{db: db}
}

// AccessTokenModel is the persistence model for the current brokerage token.
type AccessTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	Value     string    `gorm:"size:512;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (AccessTokenModel) TableName() string {
	return "brokerage_tokens"
}

// currentTokenID pins the table to a single row so a new issuance always
// supersedes the previous token.
const currentTokenID = 1

// Load returns the persisted token, or usecase.ErrTokenNotFound when the
// process has never issued one.
func (r *tokenMySQL) Load(ctx context.Context) (entity.AccessToken, error) {
	var m AccessTokenModel
	err := r.db.WithContext(ctx).First(&m, currentTokenID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.AccessToken{}, usecase.ErrTokenNotFound
		}
		return entity.AccessToken{}, err
	}
	return entity.AccessToken{
		Value:     m.Value,
		IssuedAt:  m.IssuedAt,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// Save upserts the single current-token row.
func (r *tokenMySQL) Save(ctx context.Context, token entity.AccessToken) error {
	m := AccessTokenModel{
		ID:        currentTokenID,
		Value:     token.Value,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "issued_at", "expires_at"}),
	}).Create(&m).Error
}
