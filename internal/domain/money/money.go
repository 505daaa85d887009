package money

import (
	"github.com/shopspring/decimal"

	"lending-core/pkg/apperror"
)

// Places is the scale of every money column (DECIMAL(18,2)).
const Places = 2

// CheckScale rejects values the database would silently round.
func CheckScale(field string, d decimal.Decimal) error {
	if !d.Round(Places).Equal(d) {
		return apperror.Validationf("%s must have at most %d decimal places", field, Places)
	}
	return nil
}
