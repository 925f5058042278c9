package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// AuditLogsHandler expõe a trilha de auditoria gravada pelos fluxos.
type AuditLogsHandler struct {
	env *Env
}

func NewAuditLogsHandler(env *Env) *AuditLogsHandler {
	return &AuditLogsHandler{env: env}
}

type AuditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// filter lê a query; datas e user_id malformados são recusados.
func (h *AuditLogsHandler) filter(c *gin.Context) (audit.Filter, error) {
	f := audit.Filter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, httperr.ErrBusiness("invalid_user")
		}
		uid := uint(id)
		f.UserID = &uid
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(p.key)
		if raw == "" {
			continue
		}
		d, err := calendar.ParseDate(raw, h.env.Loc)
		if err != nil {
			return f, httperr.ErrBusiness("invalid_date")
		}
		*p.dst = &d
	}
	return f.Normalize(), nil
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f, err := h.filter(c)
	if err != nil {
		httperr.FromError(c, err, "Filtro inválido.")
		return
	}

	logs, total, err := h.env.AuditLogs.List(c.Request.Context(), f)
	if err != nil {
		h.env.Log.Error("audit list failed",
			zap.String("action", f.Action),
			zap.String("entity", f.Entity),
			zap.Error(err),
		)
		httperr.Internal(c, "audit_list_failed", "Error al listar los registros.")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, AuditPage{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Logs:  logs,
	})
}
