// Package adapters implements the securities-master repository on gorm.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"invest_backend/internal/feature/search/domain/entity"
)

// SecurityModel is the gorm model for one securities-master row.
type SecurityModel struct {
	ID       uint   `gorm:"primaryKey"`
	Code     string `gorm:"size:32;uniqueIndex:idx_securities_code_exchange"`
	Name     string `gorm:"size:128;index"`
	Market   string `gorm:"size:16;index"`
	Exchange string `gorm:"size:8;uniqueIndex:idx_securities_code_exchange"`
}

func (SecurityModel) TableName() string { return "securities" }

// SecurityMySQLRepository looks up securities by code or name.
type SecurityMySQLRepository struct {
	db *gorm.DB
}

func NewSecurityMySQLRepository(db *gorm.DB) *SecurityMySQLRepository {
	return &SecurityMySQLRepository{db: db}
}

// Search returns rows whose code or name contains the query text. Ordering
// is left to the caller; this is only a coarse prefilter.
func (r *SecurityMySQLRepository) Search(ctx context.Context, query, market string, limit int) ([]entity.Security, error) {
	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Where("code LIKE ? OR name LIKE ?", pattern, pattern)
	if market != "" {
		q = q.Where("market = ?", market)
	}

	var models []SecurityModel
	if err := q.Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	securities := make([]entity.Security, len(models))
	for i, m := range models {
		securities[i] = entity.Security{
			Code:     m.Code,
			Name:     m.Name,
			Market:   m.Market,
			Exchange: m.Exchange,
		}
	}
	return securities, nil
}

// ReplaceAll swaps the securities master for the given rows in one
// transaction. Used by the ingest job.
func (r *SecurityMySQLRepository) ReplaceAll(ctx context.Context, securities []entity.Security) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SecurityModel{}).Error; err != nil {
			return err
		}
		models := make([]SecurityModel, len(securities))
		for i, s := range securities {
			models[i] = SecurityModel{
				Code:     s.Code,
				Name:     s.Name,
				Market:   s.Market,
				Exchange: s.Exchange,
			}
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, 500).Error
	})
}
