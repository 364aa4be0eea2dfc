package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda para duas casas (meio para longe do zero) e converte para float64
func RoundWithTwoDecimalPlace(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}

	return d.Round(2).InexactFloat64()
}
