package budget

import "github.com/adu-coder/nineteen/pkg/domain/budget"

// CreateBudgetInput is the body of a create request. Period defaults to monthly.
type CreateBudgetInput struct {
	Category string  `json:"category" validate:"required,max=50"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Period   string  `json:"period" validate:"omitempty,oneof=weekly monthly yearly"`
}

func (in CreateBudgetInput) toDraft() budget.Draft {
	return budget.Draft{Category: in.Category, Amount: in.Amount, Period: in.Period}
}

// UpdateBudgetInput is a partial update; absent fields are left untouched.
type UpdateBudgetInput struct {
	Category *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Period   *string  `json:"period" validate:"omitempty,oneof=weekly monthly yearly"`
	IsActive *bool    `json:"isActive"`
}

func (in UpdateBudgetInput) toPatch() budget.Patch {
	return budget.Patch{
		Category: in.Category,
		Amount:   in.Amount,
		Period:   in.Period,
		IsActive: in.IsActive,
	}
}
