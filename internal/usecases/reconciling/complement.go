package reconciling

import (
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/pkg/errors"
)

// ComplementUniverse enriquece o universo com a base de sócios.
//
// Depois da junção à esquerda, valores da função de atribuição fora da lista aceita viram o valor
// de não atribuído e partner_flag recebe SI quando o id do cliente aparece na base de sócios.
// Fica uma linha por id, a de maior prioridade, na ordem de primeira aparição no universo.
// As colunas descartáveis da base de sócios são removidas quando presentes.
func ComplementUniverse(universe, roster *domain.Table, cols domain.ColumnDictionary, rules domain.EnrichmentRules, logger log.Logger) (*domain.Table, error) {
	logger = loggerOrDefault(logger)

	universeID := cols.Universe.CustomerID
	rosterID := cols.Partners.CustomerID
	defaults := domain.DefaultEnrichmentRules()
	if rules.Unassigned == "" {
		rules.Unassigned = defaults.Unassigned
	}
	if len(rules.AllowedFunctions) == 0 {
		rules.AllowedFunctions = defaults.AllowedFunctions
	}

	if !universe.HasColumn(universeID) {
		return nil, errors.Wrapf(ErrInvalidColumns, "coluna %q ausente no universo", universeID)
	}
	if !roster.HasColumn(rosterID) {
		return nil, errors.Wrapf(ErrInvalidColumns, "coluna %q ausente na base de sócios", rosterID)
	}

	partners := make(map[string]struct{}, roster.Len())
	for _, v := range roster.Values(rosterID) {
		if id, ok := domain.CellString(v); ok {
			partners[id] = struct{}{}
		}
	}

	merged, err := domain.Join(universe, roster, universeID, rosterID, domain.JoinLeft)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao juntar universo e base de sócios")
	}

	// a chave do universo pode ter recebido sufixo se a base de sócios tiver coluna com o mesmo nome
	idCol := resolveColumn(merged, universeID, "_x")
	functionCol := resolveColumn(merged, cols.Universe.AssignmentFunction, "_x", "_y")
	if !merged.HasColumn(functionCol) {
		logger.Warnf("Coluna %q não encontrada, todos os clientes ficarão como %q", functionCol, rules.Unassigned)
		merged.AddColumn(functionCol)
	}

	type candidate struct {
		row      domain.Row
		priority int
	}

	order := make([]string, 0, merged.Len())
	best := make(map[string]candidate, merged.Len())

	for _, row := range merged.Rows {
		function, ok := domain.CellString(row[functionCol])
		if !ok || !rules.IsAllowed(function) {
			function = rules.Unassigned
		}
		row[functionCol] = function

		id, hasID := domain.CellString(row[idCol])
		row[domain.PartnerFlagColumn] = domain.PartnerNo
		if _, ok := partners[id]; hasID && ok {
			row[domain.PartnerFlagColumn] = domain.PartnerYes
		}

		key := "n"
		if hasID {
			key = "v" + id
		}

		current, seen := best[key]
		if !seen {
			order = append(order, key)
		}
		if p := rules.Priority(function); !seen || p < current.priority {
			best[key] = candidate{row: row, priority: p}
		}
	}

	out := domain.NewTable(merged.Columns...)
	out.AddColumn(domain.PartnerFlagColumn)
	for _, key := range order {
		out.Rows = append(out.Rows, best[key].row)
	}

	if removed := merged.Len() - out.Len(); removed > 0 {
		logger.Debugf("%d linhas duplicadas por cliente removidas após a junção com sócios", removed)
	}

	out = out.DropColumns(rules.DropColumns...)
	logger.WithField("rows", out.Len()).Info("Universo directa complementado e processado")

	return out, nil
}

// resolveColumn devolve o nome com que a coluna ficou após a junção
func resolveColumn(t *domain.Table, name string, suffixes ...string) string {
	if t.HasColumn(name) {
		return name
	}
	for _, suffix := range suffixes {
		if t.HasColumn(name + suffix) {
			return name + suffix
		}
	}
	return name
}
