package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/config"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/log"
	"github.com/go-co-op/gocron"
)

// PipelineSyncConfig representa a configuração do agendador do pipeline
type PipelineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PipelineSyncService agenda e serializa as execuções do pipeline de reconciliação
type PipelineSyncService struct {
	scheduler           *gocron.Scheduler
	config              PipelineSyncConfig
	reconciler          reconciling.Reconciler
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
}

// NewPipelineSyncService cria uma nova instância do serviço de agendamento do pipeline
func NewPipelineSyncService(reconciler reconciling.Reconciler, cfg config.Pipeline) *PipelineSyncService {
	syncConfig := PipelineSyncConfig{
		CronSchedule: cfg.CronSchedule,
		SyncEnabled:  cfg.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do pipeline carregada")

	return &PipelineSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		reconciler: reconciler,
		baseCtx:    context.Background(),
	}
}

// Start inicia o agendador
func (s *PipelineSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		log.L.Info("Execução agendada do pipeline desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do pipeline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunNow(ctx); err != nil {
			log.L.WithError(err).Warn("Execução agendada do pipeline não concluída")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pipeline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador do pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa o pipeline de forma síncrona.
// Retorna reconciling.ErrRunInProgress se outra execução estiver em andamento.
func (s *PipelineSyncService) RunNow(ctx context.Context) (*domain.RunResult, error) {
	if !s.acquire() {
		log.L.Info("Pipeline já em andamento, ignorando")
		return nil, reconciling.ErrRunInProgress
	}

	return s.run(ctx)
}

// TriggerManualSync inicia manualmente uma execução em segundo plano
func (s *PipelineSyncService) TriggerManualSync() error {
	if !s.acquire() {
		log.L.Info("Pipeline já em andamento, ignorando solicitação manual")
		return reconciling.ErrRunInProgress
	}

	s.syncMutex.Lock()
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	log.L.Info("Iniciando execução manual do pipeline")
	go func() {
		if _, err := s.run(ctx); err != nil {
			log.L.WithError(err).Error("Execução manual do pipeline falhou")
		}
	}()
	return nil
}

func (s *PipelineSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *PipelineSyncService) run(ctx context.Context) (*domain.RunResult, error) {
	result, err := s.runReconciler(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	s.lastError = ""
	s.lastRunID = result.ID
	s.lastSyncCompletedAt = time.Now()
	return result, nil
}

// runReconciler converte um pânico da execução em erro para liberar o agendador
func (s *PipelineSyncService) runReconciler(ctx context.Context) (result *domain.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.L.WithField("panic", r).Error("Pânico durante a execução do pipeline")
			result, err = nil, fmt.Errorf("pânico durante a execução do pipeline: %v", r)
		}
	}()

	return s.reconciler.Run(ctx)
}

// Running informa se há uma execução em andamento
func (s *PipelineSyncService) Running() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
	}
}
