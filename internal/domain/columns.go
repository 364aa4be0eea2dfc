package domain

// Valores usados no enriquecimento do universo com a base de sócios
const (
	PartnerFlagColumn = "partner_flag"
	PartnerYes        = "SI"
	PartnerNo         = "NO"
	Unassigned        = "Sin asignar"
)

// ColumnDictionary mapeia os nomes das colunas do universo e da base de sócios
type ColumnDictionary struct {
	Universe UniverseColumns `mapstructure:"universo_directa" json:"universo_directa"`
	Partners PartnerColumns  `mapstructure:"base_socios" json:"base_socios"`
}

type UniverseColumns struct {
	CustomerID         string `mapstructure:"id_cliente" json:"id_cliente"`
	AssignmentFunction string `mapstructure:"funcion_inter" json:"funcion_inter"`
}

type PartnerColumns struct {
	CustomerID string `mapstructure:"id_cliente" json:"id_cliente"`
}

// EnrichmentRules define a lista de funções aceitas, em ordem de prioridade,
// o valor atribuído às demais e as colunas da base de sócios descartadas no final.
type EnrichmentRules struct {
	AllowedFunctions []string `mapstructure:"allowed_functions" json:"allowed_functions"`
	Unassigned       string   `mapstructure:"unassigned" json:"unassigned"`
	DropColumns      []string `mapstructure:"drop_columns" json:"drop_columns"`
}

func DefaultEnrichmentRules() EnrichmentRules {
	return EnrichmentRules{
		AllowedFunctions: []string{"Z1", "ZA"},
		Unassigned:       Unassigned,
		DropColumns:      []string{"Cod_Agente", "Nom_Agente"},
	}
}

// Priority devolve a posição do valor na lista de funções aceitas.
// O valor de não atribuído, e qualquer outro, fica depois de todas elas.
func (r EnrichmentRules) Priority(function string) int {
	for i, allowed := range r.AllowedFunctions {
		if allowed == function {
			return i
		}
	}
	return len(r.AllowedFunctions)
}

// IsAllowed indica se o valor pertence à lista de funções aceitas
func (r EnrichmentRules) IsAllowed(function string) bool {
	return r.Priority(function) < len(r.AllowedFunctions)
}
