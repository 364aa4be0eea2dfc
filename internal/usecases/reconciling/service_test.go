package reconciling

import (
	"context"
	"strings"
	"testing"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling/mocks"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func serviceSettings() Settings {
	return Settings{
		Columns:       columnsFixture(),
		SalesColumns:  domain.DefaultSalesColumns(),
		Enrichment:    domain.DefaultEnrichmentRules(),
		Period:        domain.NewPeriod(2023, 1, 2023, 3),
		Join:          domain.JoinLeft,
		SalesDir:      "ventas",
		DedupRoster:   true,
		ExportFormats: []string{"csv", "xlsx"},
	}
}

func universeTable() *domain.Table {
	universe := domain.NewTable("id_cliente", "nombre")
	universe.AppendRow(domain.Row{"id_cliente": "1", "nombre": "Tienda A"})
	universe.AppendRow(domain.Row{"id_cliente": "2", "nombre": "Tienda B"})
	universe.AppendRow(domain.Row{"id_cliente": "3", "nombre": "Tienda C"})
	return universe
}

func TestService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUniverse := mocks.NewMockTableSource(ctrl)
	mockPartners := mocks.NewMockTableSource(ctrl)
	mockLoader := mocks.NewMockSalesLoader(ctrl)
	mockExporter := mocks.NewMockExporter(ctrl)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, result *domain.RunResult, err error)
	}{
		{
			name: "Execução completa com vendas e exportação",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(
					domain.Row{"Cod_Cliente": "1", "Funcion_Inter": "Z1"},
					domain.Row{"Cod_Cliente": "1", "Funcion_Inter": "ZA"},
				), nil)
				mockLoader.EXPECT().FindSalesFiles("ventas").Return([]string{"ventas/venta_enero.csv"}, nil)
				mockLoader.EXPECT().LoadSales(gomock.Any(), []string{"ventas/venta_enero.csv"}).Return(salesFixture(), nil)
				mockExporter.EXPECT().
					Export(gomock.Any(), gomock.Any(), gomock.Any(), []string{"csv", "xlsx"}).
					DoAndReturn(func(_ context.Context, table *domain.Table, name string, _ []string) ([]string, error) {
						assert.True(t, strings.HasPrefix(name, OutputPrefix))
						assert.Equal(t, 3, table.Len())
						return []string{"out/" + name + ".csv", "out/" + name + ".xlsx"}, nil
					})
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Len(t, result.ID, 10)
				assert.Equal(t, 3, result.UniverseRows)
				assert.Equal(t, 1, result.PartnerRows, "base de sócios deduplicada pelo id")
				assert.Equal(t, 3, result.OutputRows)
				assert.Equal(t, 6, result.SalesRows)
				assert.Equal(t, 3, result.Months)
				assert.True(t, result.PeriodDefined)
				assert.Equal(t, []string{"rica", "zenu"}, result.Brands)
				assert.Equal(t, 210.0, result.TotalAmount)
				assert.Equal(t, 22.0, result.TotalVolume)
				assert.Len(t, result.Exports, 2)
				assert.Equal(t, "Z1", result.Output.Rows[0]["Funcion_Inter"])
				assert.Equal(t, domain.PartnerYes, result.Output.Rows[0][domain.PartnerFlagColumn])
				assert.Equal(t, domain.PartnerNo, result.Output.Rows[1][domain.PartnerFlagColumn])
			},
		},
		{
			name: "Sem arquivos de venda devolve o universo complementado",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(), nil)
				mockLoader.EXPECT().FindSalesFiles("ventas").Return([]string{}, nil)
				mockExporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"out/a.csv"}, nil)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, result.SalesRows)
				assert.Equal(t, 3, result.OutputRows)
				assert.Empty(t, result.Brands)
				assert.False(t, result.Output.HasColumn(domain.TotalAmountColumn))
				assert.Equal(t, domain.Unassigned, result.Output.Rows[2]["Funcion_Inter"])
			},
		},
		{
			name: "Erro ao carregar universo",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrLoadUniverse)
			},
		},
		{
			name: "Erro ao carregar base de sócios",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrLoadPartners)
			},
		},
		{
			name: "Coluna de id da base de sócios inexistente",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(domain.NewTable("outra"), nil)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				assert.Nil(t, result)
				assert.True(t, IsConfigurationError(err))

				var pipelineErr *PipelineError
				require.ErrorAs(t, err, &pipelineErr)
				assert.NotEmpty(t, pipelineErr.RunID)
			},
		},
		{
			name: "Erro ao ler vendas",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(), nil)
				mockLoader.EXPECT().FindSalesFiles("ventas").Return([]string{"ventas/venta.csv"}, nil)
				mockLoader.EXPECT().LoadSales(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrLoadSales)
			},
		},
		{
			name: "Erro na exportação",
			setup: func() {
				mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
				mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(), nil)
				mockLoader.EXPECT().FindSalesFiles("ventas").Return(nil, nil)
				mockExporter.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrExport)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			service := NewService(mockUniverse, mockPartners, mockLoader, mockExporter, serviceSettings(), log.Nop())
			result, err := service.Run(context.Background())
			tt.validate(t, result, err)

			last, lastErr := service.LastResult()
			if err != nil {
				assert.ErrorIs(t, lastErr, ErrNoResult)
			} else {
				require.NoError(t, lastErr)
				assert.Same(t, result, last)
			}
		})
	}
}

func TestService_RunWithoutExporter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUniverse := mocks.NewMockTableSource(ctrl)
	mockPartners := mocks.NewMockTableSource(ctrl)
	mockLoader := mocks.NewMockSalesLoader(ctrl)

	mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
	mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(), nil)
	mockLoader.EXPECT().FindSalesFiles("ventas").Return(nil, nil)

	service := NewService(mockUniverse, mockPartners, mockLoader, nil, serviceSettings(), log.Nop())
	result, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Exports)
}

func TestService_RunCanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUniverse := mocks.NewMockTableSource(ctrl)
	mockPartners := mocks.NewMockTableSource(ctrl)
	mockLoader := mocks.NewMockSalesLoader(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockUniverse.EXPECT().Load(gomock.Any()).Return(universeTable(), nil)
	mockPartners.EXPECT().Load(gomock.Any()).Return(rosterWith(), nil)

	service := NewService(mockUniverse, mockPartners, mockLoader, nil, serviceSettings(), log.Nop())
	_, err := service.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
