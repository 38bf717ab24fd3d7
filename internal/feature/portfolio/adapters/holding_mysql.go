// Package adapters implements the holdings repository on gorm.
package adapters

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"invest_backend/internal/feature/portfolio/domain/entity"
)

// HoldingModel is the gorm model for one member position row.
type HoldingModel struct {
	ID          uint            `gorm:"primaryKey"`
	HouseholdID uint            `gorm:"index"`
	MemberID    uint            `gorm:"index"`
	MemberName  string          `gorm:"size:64"`
	Symbol      string          `gorm:"size:32;index"`
	Exchange    string          `gorm:"size:8"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4)"`
	AverageCost decimal.Decimal `gorm:"type:decimal(20,4)"`
	Currency    string          `gorm:"size:8"`
	AssetClass  string          `gorm:"size:16"`
	RiskLevel   string          `gorm:"size:16"`
}

func (HoldingModel) TableName() string { return "holdings" }

// HoldingMySQLRepository reads household holdings.
type HoldingMySQLRepository struct {
	db *gorm.DB
}

func NewHoldingMySQLRepository(db *gorm.DB) *HoldingMySQLRepository {
	return &HoldingMySQLRepository{db: db}
}

// ListByHousehold returns every member's positions for one household,
// ordered by member then symbol for stable presentation.
func (r *HoldingMySQLRepository) ListByHousehold(ctx context.Context, householdID uint) ([]entity.Holding, error) {
	var models []HoldingModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("member_id, symbol").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	holdings := make([]entity.Holding, len(models))
	for i, m := range models {
		holdings[i] = entity.Holding{
			MemberID:    m.MemberID,
			MemberName:  m.MemberName,
			Symbol:      m.Symbol,
			Exchange:    m.Exchange,
			Quantity:    m.Quantity,
			AverageCost: m.AverageCost,
			Currency:    m.Currency,
			AssetClass:  m.AssetClass,
			RiskLevel:   m.RiskLevel,
		}
	}
	return holdings, nil
}
