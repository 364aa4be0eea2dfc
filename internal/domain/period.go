package domain

import "fmt"

// Period define o intervalo de meses (inclusivo) usado como divisor das médias.
// Limites nil indicam período não definido.
type Period struct {
	StartYear  *int `mapstructure:"start_year" json:"start_year,omitempty"`
	EndYear    *int `mapstructure:"end_year" json:"end_year,omitempty"`
	StartMonth *int `mapstructure:"start_month" json:"start_month,omitempty"`
	EndMonth   *int `mapstructure:"end_month" json:"end_month,omitempty"`
}

func NewPeriod(startYear, startMonth, endYear, endMonth int) Period {
	return Period{
		StartYear:  &startYear,
		EndYear:    &endYear,
		StartMonth: &startMonth,
		EndMonth:   &endMonth,
	}
}

// IsDefined indica se os quatro limites foram informados
func (p Period) IsDefined() bool {
	return p.StartYear != nil && p.EndYear != nil && p.StartMonth != nil && p.EndMonth != nil
}

// Months devolve a quantidade de meses do período, nunca menor que 1.
// Sem período definido o divisor é 1.
func (p Period) Months() int {
	if !p.IsDefined() {
		return 1
	}

	months := (*p.EndYear-*p.StartYear)*12 + (*p.EndMonth - *p.StartMonth) + 1
	return max(1, months)
}

// Label formata o período como "YYYY-MM - YYYY-MM"
func (p Period) Label() string {
	if !p.IsDefined() {
		return "indefinido"
	}
	return fmt.Sprintf("%04d-%02d - %04d-%02d", *p.StartYear, *p.StartMonth, *p.EndYear, *p.EndMonth)
}
