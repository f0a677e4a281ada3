package cards

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommissionResult holds the fee and the grand total for an amount. Values
// are rounded to 2 decimal places here, at the boundary; intermediate math
// keeps full precision.
type CommissionResult struct {
	Commission  decimal.Decimal `json:"commission"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CalculateCommission computes the fee for an amount under the brand's
// commission model. An unknown model tag is a configuration error, not a
// user input error.
func CalculateCommission(brand Brand, amount decimal.Decimal) (CommissionResult, error) {
	var commission decimal.Decimal
	switch brand.Commission.Type {
	case CommissionFixed:
		commission = brand.Commission.Fixed
	case CommissionPercent:
		commission = amount.Mul(brand.Commission.Rate)
	case CommissionMixed:
		commission = amount.Mul(brand.Commission.Rate).Add(brand.Commission.Fixed)
	default:
		return CommissionResult{}, fmt.Errorf("brand %s: unknown commission type %q", brand.Name, brand.Commission.Type)
	}
	return CommissionResult{
		Commission:  commission.Round(2),
		TotalAmount: amount.Add(commission).Round(2),
	}, nil
}
