package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/client"
)

// Env reúne o que os handlers compartilham. Os stores de sessão (espelho,
// diretório, livro de serviços) são montados por requisição.
type Env struct {
	Clients      client.Repository
	Services     client.ServiceRepository
	Appointments appointment.Repository
	Notices      notice.Repository
	Tx           ucClient.Transactor
	Drafts       ucAppointment.DraftStore
	Audit        audit.Sink
	AuditLogs    audit.Reader
	Log          *zap.Logger
	Loc          *time.Location
	Now          func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now().In(e.Loc)
	}
	return time.Now().In(e.Loc)
}

func (e *Env) sink() audit.Sink {
	if e.Audit == nil {
		return audit.Nop{}
	}
	return e.Audit
}

// ======================================================
// SESSÃO POR REQUISIÇÃO
// ======================================================

type session struct {
	ctx      context.Context
	notes    *notify.Collector
	notifier notify.Notifier
}

func (e *Env) open(c *gin.Context) *session {
	notes := notify.NewCollector()
	return &session{
		ctx:      c.Request.Context(),
		notes:    notes,
		notifier: notify.Tee{notes, notify.NewLogNotifier(e.Log)},
	}
}

func (e *Env) clientDeps(s *session) ucClient.Deps {
	return ucClient.Deps{
		Clients:      e.Clients,
		Services:     e.Services,
		Appointments: e.Appointments,
		Tx:           e.Tx,
		Log:          e.Log,
		Notifier:     s.notifier,
		Audit:        e.sink(),
	}
}

func (e *Env) mirror() *ucAppointment.Mirror {
	return ucAppointment.NewMirror(e.Appointments, e.Log, e.sink())
}

// failStatus traduz o último código de erro notificado em status HTTP.
func failStatus(notes *notify.Collector) int {
	code := ""
	for _, m := range notes.Messages() {
		if m.Level == notify.LevelError {
			code = m.Code
		}
	}

	switch code {
	case "duplicate_id", "duplicate_service":
		return http.StatusConflict
	case "client_not_saved", "service_not_saved", "service_not_removed",
		"appointment_not_saved", "cascade_failed", "cascade_partial",
		"batch_failed", "attendance_not_saved", "notice_not_saved", "notice_not_deleted":
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
