package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/api/handler/mocks"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/api/handler/router"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/domain"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/authenticating"
	authmocks "github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/authenticating/mocks"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling"
	reconcilingmocks "github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/internal/usecases/reconciling/mocks"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/apiErrors"
	"github.com/danieljaramillo52/Padrinazgo-Automatizion-Clustering-Samuel/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func withOperator(r *http.Request, role int) *http.Request {
	claims := &domain.Claims{UserEmail: "op@empresa.com", UserRoleID: role}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		body       string
		setup      func(auth *authmocks.MockAuthenticator)
		wantStatus int
		validate   func(t *testing.T, body map[string]any)
	}{
		{
			name: "Login com sucesso",
			body: `{"email":"op@empresa.com","password":"segredo"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser("op@empresa.com", "segredo").Return("jwt-token", nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "jwt-token", body["token"])
			},
		},
		{
			name:       "Corpo inválido",
			body:       `{email`,
			setup:      func(auth *authmocks.MockAuthenticator) {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrInvalidRequest, body["code"])
			},
		},
		{
			name: "Operador inexistente responde como credencial inválida",
			body: `{"email":"x@empresa.com","password":"segredo"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser("x@empresa.com", "segredo").Return("",
					authenticating.NewAuthError(authenticating.ErrUserNotFound, apiErrors.ErrUserNotFound, "Operador não encontrado"))
			},
			wantStatus: http.StatusUnauthorized,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrInvalidCredentials, body["code"])
			},
		},
		{
			name: "Dados ausentes",
			body: `{"email":""}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser("", "").Return("",
					authenticating.NewAuthError(authenticating.ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios"))
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrMissingRequiredData, body["code"])
			},
		},
		{
			name: "Erro inesperado",
			body: `{"email":"op@empresa.com","password":"segredo"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().LoginUser(gomock.Any(), gomock.Any()).Return("", assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrInternalServer, body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := authmocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))
			Login(auth).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, decodeBody(t, rec))
		})
	}
}

func TestGetMe(t *testing.T) {
	rec := httptest.NewRecorder()
	GetMe().ServeHTTP(rec, withOperator(httptest.NewRequest(http.MethodGet, "/v1/me", nil), middleware.RoleAdmin))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "op@empresa.com", body["email"])
	assert.Equal(t, float64(middleware.RoleAdmin), body["role_id"])

	rec = httptest.NewRecorder()
	GetMe().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRunPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		setup      func(s *mocks.MockPipelineScheduler)
		wantStatus int
		wantCode   string
	}{
		{
			name: "Execução iniciada",
			setup: func(s *mocks.MockPipelineScheduler) {
				s.EXPECT().TriggerManualSync().Return(nil)
				s.EXPECT().GetStatus().Return(map[string]any{"sync_running": true})
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "Execução já em andamento",
			setup: func(s *mocks.MockPipelineScheduler) {
				s.EXPECT().TriggerManualSync().Return(reconciling.ErrRunInProgress)
			},
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrPipelineRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := mocks.NewMockPipelineScheduler(ctrl)
			tt.setup(scheduler)

			rec := httptest.NewRecorder()
			req := withOperator(httptest.NewRequest(http.MethodPost, "/v1/pipeline/run", nil), middleware.RoleSupervisor)
			RunPipeline(scheduler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
			}
		})
	}
}

func TestGetPipelineResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	output := domain.NewTable("id_cliente", "partner_flag")
	output.AppendRow(domain.Row{"id_cliente": "1", "partner_flag": "SI"})
	output.AppendRow(domain.Row{"id_cliente": "2", "partner_flag": "NO"})
	result := &domain.RunResult{ID: "run1", OutputRows: 2, Output: output}

	tests := []struct {
		name       string
		query      string
		setup      func(r *reconcilingmocks.MockReconciler)
		wantStatus int
		validate   func(t *testing.T, body map[string]any)
	}{
		{
			name: "Resultado com tabela completa",
			setup: func(r *reconcilingmocks.MockReconciler) {
				r.EXPECT().LastResult().Return(result, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "run1", body["result"].(map[string]any)["id"])
				table := body["table"].(map[string]any)
				assert.Len(t, table["rows"], 2)
				assert.Equal(t, []any{"id_cliente", "partner_flag"}, table["columns"])
			},
		},
		{
			name:  "Limite de linhas",
			query: "?limit=1",
			setup: func(r *reconcilingmocks.MockReconciler) {
				r.EXPECT().LastResult().Return(result, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["table"].(map[string]any)["rows"], 1)
			},
		},
		{
			name:  "Sem tabela",
			query: "?include_rows=false",
			setup: func(r *reconcilingmocks.MockReconciler) {
				r.EXPECT().LastResult().Return(result, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]any) {
				_, ok := body["table"]
				assert.False(t, ok)
			},
		},
		{
			name:  "Limite inválido",
			query: "?limit=-3",
			setup: func(r *reconcilingmocks.MockReconciler) {
				r.EXPECT().LastResult().Return(result, nil)
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, body["code"])
			},
		},
		{
			name: "Nenhuma execução concluída",
			setup: func(r *reconcilingmocks.MockReconciler) {
				r.EXPECT().LastResult().Return(nil, reconciling.ErrNoResult)
			},
			wantStatus: http.StatusNotFound,
			validate: func(t *testing.T, body map[string]any) {
				assert.Equal(t, apiErrors.ErrPipelineNoResult, body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reconciler := reconcilingmocks.NewMockReconciler(ctrl)
			tt.setup(reconciler)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/pipeline/result"+tt.query, nil)
			GetPipelineResult(reconciler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, decodeBody(t, rec))
		})
	}
}

func TestHandlePipelineError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := reconciling.NewPipelineError(reconciling.ErrInvalidColumns, apiErrors.ErrInvalidRequest, "run9", "id_cliente")

	handlePipelineError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, apiErrors.ErrInvalidRequest, body["code"])
	assert.Equal(t, "run9", body["details"].(map[string]any)["run_id"])
}

func TestCronJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduler := mocks.NewMockPipelineScheduler(ctrl)
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{PipelineSyncService: scheduler})...))

	t.Run("Executa cron do pipeline", func(t *testing.T) {
		scheduler.EXPECT().TriggerManualSync().Return(nil)

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, withOperator(httptest.NewRequest(http.MethodPost, "/v1/cron/pipeline/run", nil), middleware.RoleAdmin))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "pipeline", decodeBody(t, rec)["type"])
	})

	t.Run("Tipo desconhecido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, withOperator(httptest.NewRequest(http.MethodPost, "/v1/cron/meta/run", nil), middleware.RoleAdmin))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Supervisor não executa cron", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, withOperator(httptest.NewRequest(http.MethodPost, "/v1/cron/pipeline/run", nil), middleware.RoleSupervisor))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Status das crons", func(t *testing.T) {
		scheduler.EXPECT().GetStatus().Return(map[string]any{"sync_enabled": true})

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, withOperator(httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), middleware.RoleSupervisor))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["pipeline"].(map[string]any)["sync_enabled"])
	})
}

func TestHealthcheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthcheckHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}
