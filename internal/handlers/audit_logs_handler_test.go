package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

type fakeAuditReader struct {
	got  audit.Filter
	logs []models.AuditLog
	err  error
}

func (f *fakeAuditReader) List(_ context.Context, filter audit.Filter) ([]models.AuditLog, int64, error) {
	f.got = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.logs, int64(len(f.logs)), nil
}

func auditEngine(reader audit.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	env := &Env{AuditLogs: reader, Log: zap.NewNop(), Loc: time.UTC}
	r := gin.New()
	r.GET("/audit-logs", NewAuditLogsHandler(env).List)
	return r
}

func getAudit(r *gin.Engine, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs"+query, nil))
	return w
}

func TestAuditLogsList_PassesFilters(t *testing.T) {
	reader := &fakeAuditReader{logs: []models.AuditLog{{ID: 1, Action: "appointment_created", Entity: "cita"}}}
	r := auditEngine(reader)

	w := getAudit(r, "?action=appointment_created&entity=cita&user_id=7&from=2024-06-10&to=2024-06-14&page=2&limit=500")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	f := reader.got
	assert.Equal(t, "appointment_created", f.Action)
	assert.Equal(t, "cita", f.Entity)
	require.NotNil(t, f.UserID)
	assert.Equal(t, uint(7), *f.UserID)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, "2024-06-14", f.To.Format("2006-01-02"))
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, audit.DefaultPageSize, f.Limit)

	page := decode[AuditPage](t, w)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "appointment_created", page.Logs[0].Action)
}

func TestAuditLogsList_RejectsMalformedFilters(t *testing.T) {
	r := auditEngine(&fakeAuditReader{})

	w := getAudit(r, "?from=10/06/2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", decode[httperr.HTTPError](t, w).Code)

	w = getAudit(r, "?user_id=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_user", decode[httperr.HTTPError](t, w).Code)
}

func TestAuditLogsList_StoreFailure(t *testing.T) {
	r := auditEngine(&fakeAuditReader{err: errors.New("connection reset")})

	w := getAudit(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "audit_list_failed", decode[httperr.HTTPError](t, w).Code)
}

func TestAuditLogsList_EmptyIsArray(t *testing.T) {
	w := getAudit(auditEngine(&fakeAuditReader{}), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":1,"limit":50,"total":0,"logs":[]}`, w.Body.String())
}
