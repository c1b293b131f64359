package transaction

import (
	"time"

	"github.com/adu-coder/nineteen/pkg/domain/transaction"
	"github.com/google/uuid"
)

// Transaction is the persisted ledger entry. (user_id, id) is the primary key.
type Transaction struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_transactions_user_date,priority:1"`
	ID          string    `gorm:"primaryKey;size:128"`
	Title       string    `gorm:"not null;size:255"`
	Amount      float64   `gorm:"not null"`
	IsExpense   bool      `gorm:"not null"`
	Tags        []string  `gorm:"type:text;serializer:json"`
	Description string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index:idx_transactions_user_date,priority:2"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

func mapDomainToModel(t *transaction.Transaction) *Transaction {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Transaction{
		UserID:      t.UserID,
		ID:          t.ID,
		Title:       t.Title,
		Amount:      t.Amount,
		IsExpense:   t.IsExpense,
		Tags:        tags,
		Description: t.Description,
		Date:        t.Date.UTC(),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func mapModelToDomain(m *Transaction) *transaction.Transaction {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return &transaction.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Amount:      m.Amount,
		IsExpense:   m.IsExpense,
		Tags:        tags,
		Description: m.Description,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
