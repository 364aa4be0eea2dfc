package domain

import "time"

// RunResult resume uma execução do pipeline de reconciliação
type RunResult struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
	UniverseRows  int       `json:"universe_rows"`
	PartnerRows   int       `json:"partner_rows"`
	OutputRows    int       `json:"output_rows"`
	SalesFiles    []string  `json:"sales_files"`
	SalesRows     int       `json:"sales_rows"`
	DroppedRows   int       `json:"dropped_rows"`
	CoercedValues int       `json:"coerced_values"`
	Months        int       `json:"months"`
	PeriodDefined bool      `json:"period_defined"`
	Brands        []string  `json:"brands"`
	TotalAmount   float64   `json:"total_amount"`
	TotalVolume   float64   `json:"total_volume"`
	Exports       []string  `json:"exports"`
	Output        *Table    `json:"-"`
}
