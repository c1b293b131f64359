package transaction

import "github.com/shopspring/decimal"

// Balance is the all-time income/expense total of an owner.
type Balance struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// Analytics breaks an owner's expenses down by tag.
type Analytics struct {
	TagTotals      map[string]float64 `json:"tagTotals"`
	TagPercentages map[string]int     `json:"tagPercentages"`
	TotalExpense   float64            `json:"totalExpense"`
}

// Summarize sums txs into a Balance.
func Summarize(txs []*Transaction) Balance {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.IsExpense {
			expense = expense.Add(decimal.NewFromFloat(t.Amount))
		} else {
			income = income.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return Balance{
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		Balance:      income.Sub(expense).InexactFloat64(),
	}
}

// Analyze groups the expenses in txs by tag. A transaction with several tags counts
// fully toward each of them, so percentages may add up to more than 100. Percentages
// are rounded to the nearest integer and are 0 when there are no expenses.
func Analyze(txs []*Transaction) Analytics {
	total := decimal.Zero
	byTag := map[string]decimal.Decimal{}
	for _, t := range txs {
		if !t.IsExpense {
			continue
		}
		amount := decimal.NewFromFloat(t.Amount)
		total = total.Add(amount)
		for _, tag := range t.Tags {
			byTag[tag] = byTag[tag].Add(amount)
		}
	}

	out := Analytics{
		TagTotals:      make(map[string]float64, len(byTag)),
		TagPercentages: make(map[string]int, len(byTag)),
		TotalExpense:   total.InexactFloat64(),
	}
	hundred := decimal.NewFromInt(100)
	for tag, amount := range byTag {
		out.TagTotals[tag] = amount.InexactFloat64()
		if total.IsPositive() {
			out.TagPercentages[tag] = int(amount.Mul(hundred).Div(total).Round(0).IntPart())
		} else {
			out.TagPercentages[tag] = 0
		}
	}
	return out
}
