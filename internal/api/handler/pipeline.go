package handler

import (
	"net/http"
	"strconv"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/apiErrors"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/middleware"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=pipeline.go -destination=mocks/pipeline_mock.go -package=mocks

// PipelineScheduler dispara execuções em segundo plano e informa o status do agendador
type PipelineScheduler interface {
	TriggerManualSync() error
	GetStatus() map[string]any
}

type PipelineResultResponse struct {
	Result *domain.RunResult `json:"result"`
	Table  *domain.Table     `json:"table,omitempty"`
}

// RunPipeline inicia uma execução do pipeline e responde imediatamente
func RunPipeline(scheduler PipelineScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		if claims, ok := middleware.ClaimsFromContext(r); ok {
			logger = logger.WithField("operator", claims.UserEmail)
		}

		if err := scheduler.TriggerManualSync(); err != nil {
			logger.WithError(err).Warn("Execução do pipeline recusada")
			handlePipelineError(w, err)
			return
		}

		logger.Info("Execução do pipeline iniciada pela API")
		err := writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Execução do pipeline iniciada",
			"status":  scheduler.GetStatus(),
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

func GetPipelineStatus(scheduler PipelineScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := writeJSON(w, http.StatusOK, scheduler.GetStatus()); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// GetPipelineResult devolve o resumo da última execução concluída.
// Query params: include_rows=false omite a tabela; limit=N limita as linhas retornadas.
func GetPipelineResult(reconciler reconciling.Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := reconciler.LastResult()
		if err != nil {
			handlePipelineError(w, err)
			return
		}

		query := r.URL.Query()
		includeRows := true
		if raw := query.Get("include_rows"); raw != "" {
			includeRows, err = strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "include_rows deve ser booleano", nil)
				return
			}
		}

		limit := -1
		if raw := query.Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro não negativo", nil)
				return
			}
		}

		response := PipelineResultResponse{Result: result}
		if includeRows {
			response.Table = limitRows(result.Output, limit)
		}

		if err := writeJSON(w, http.StatusOK, response); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

func limitRows(t *domain.Table, limit int) *domain.Table {
	if t == nil || limit < 0 || limit >= t.Len() {
		return t
	}
	return &domain.Table{
		Columns: t.Columns,
		Rows:    t.Rows[:limit],
	}
}

func handlePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconciling.ErrRunInProgress):
		apiErrors.WriteError(w, apiErrors.ErrPipelineRunning, "Já existe uma execução do pipeline em andamento", nil)
	case errors.Is(err, reconciling.ErrNoResult):
		apiErrors.WriteError(w, apiErrors.ErrPipelineNoResult, "Nenhuma execução do pipeline concluída", nil)
	default:
		var pipelineErr *reconciling.PipelineError
		if errors.As(err, &pipelineErr) {
			apiErrors.WriteError(w, pipelineErr.Code, pipelineErr.Error(), map[string]any{
				"run_id": pipelineErr.RunID,
			})
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no pipeline", nil)
	}
}
