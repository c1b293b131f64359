package budget

import (
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/budget"
	"github.com/google/uuid"
)

// Budget is the persisted budget record. The partial unique index keeps one active
// budget per (user, category).
type Budget struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_budgets_active_category,where:is_active = true"`
	Category  string    `gorm:"not null;size:255;uniqueIndex:idx_budgets_active_category"`
	Amount    float64   `gorm:"not null"`
	Period    string    `gorm:"not null;size:16"`
	StartDate time.Time `gorm:"not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the Budget model.
func (Budget) TableName() string {
	return "budgets"
}

func mapDomainToModel(b *budget.Budget) *Budget {
	return &Budget{
		ID:        b.ID,
		UserID:    b.UserID,
		Category:  b.Category,
		Amount:    b.Amount,
		Period:    string(b.Period),
		StartDate: b.StartDate.UTC(),
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
}

func mapModelToDomain(m *Budget) *budget.Budget {
	return &budget.Budget{
		ID:        m.ID,
		UserID:    m.UserID,
		Category:  m.Category,
		Amount:    m.Amount,
		Period:    budget.Period(m.Period),
		StartDate: m.StartDate,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
