package handler

import (
	"net/http"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/apiErrors"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypePipeline = "pipeline"
	CronJobTypeAll      = "all"
)

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	PipelineSyncService PipelineScheduler
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypePipeline, CronJobTypeAll:
			if services.PipelineSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de agendamento do pipeline não disponível", nil)
				return
			}
			if err := services.PipelineSyncService.TriggerManualSync(); err != nil {
				handlePipelineError(w, err)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: pipeline, all", nil)
			return
		}

		logger.WithField("type", cronType).Info("Cron job iniciada manualmente")
		err := writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.PipelineSyncService != nil {
			status[CronJobTypePipeline] = services.PipelineSyncService.GetStatus()
		}

		if err := writeJSON(w, http.StatusOK, status); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
		}
	}
}
