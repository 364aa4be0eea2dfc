package main

import (
	"path/filepath"
	"testing"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/repository"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/repository/mocks"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/infrastructure/tabular"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewTableSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTableRepository(ctrl)

	tests := []struct {
		name   string
		source config.Source
		repo   repository.TableRepository
		want   any
	}{
		{
			name:   "Arquivo",
			source: config.Source{Kind: config.SourceKindFile, Path: "universo.xlsx"},
			repo:   repo,
			want:   &tabular.FileSource{},
		},
		{
			name:   "Tabela do postgres",
			source: config.Source{Kind: config.SourceKindPostgres, Table: "base_socios"},
			repo:   repo,
			want:   &repository.TableSource{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, newTableSource(tt.source, tt.repo))
		})
	}
}

func TestPipelineSettings(t *testing.T) {
	cfg := &config.Config{
		Sales:      config.Sales{Dir: "ventas", Columns: domain.DefaultSalesColumns()},
		Enrichment: domain.DefaultEnrichmentRules(),
		Pipeline:   config.Pipeline{Join: "inner", DedupRoster: true},
		Export:     config.Export{Formats: []string{"csv"}},
	}

	settings := pipelineSettings(cfg)

	assert.Equal(t, domain.JoinInner, settings.Join)
	assert.Equal(t, "ventas", settings.SalesDir)
	assert.True(t, settings.DedupRoster)
	assert.Equal(t, []string{"csv"}, settings.ExportFormats)
	assert.Equal(t, domain.DefaultSalesColumns(), settings.SalesColumns)
}

func TestLoadConfig_FailureIsFatal(t *testing.T) {
	logger := logrus.StandardLogger()
	hook := test.NewLocal(logger)

	exitCode := 0
	previousExit := logger.ExitFunc
	logger.ExitFunc = func(code int) { exitCode = code }

	previousFlags := rootFlags
	rootFlags.configPath = filepath.Join(t.TempDir(), "nao_existe.yml")
	rootFlags.editablePath = ""

	defer func() {
		logger.ExitFunc = previousExit
		logger.ReplaceHooks(make(logrus.LevelHooks))
		rootFlags = previousFlags
	}()

	cfg, err := loadConfig()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrReadConfig)
	assert.Equal(t, 1, exitCode)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.FatalLevel, hook.LastEntry().Level)
}
