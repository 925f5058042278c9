package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httpresp"
	ucNotice "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/notice"
)

type NoticeHandler struct {
	env *Env
}

func NewNoticeHandler(env *Env) *NoticeHandler {
	return &NoticeHandler{env: env}
}

type CreateNoticeRequest struct {
	Title     string `json:"titulo"`
	Body      string `json:"contenido"`
	Priority  string `json:"prioridad"`
	ExpiresAt string `json:"fecha_expiracion"`
}

// expiration aceita RFC3339 ou só a data (vale até o fim do dia).
func (h *NoticeHandler) expiration(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if d, err := calendar.ParseDate(raw, h.env.Loc); err == nil {
		return d.Add(24*time.Hour - time.Second)
	}
	return time.Time{}
}

func (h *NoticeHandler) board(s *session) *ucNotice.Board {
	return ucNotice.NewBoard(h.env.Notices, h.env.Log, s.notifier, h.env.now)
}

func (h *NoticeHandler) List(c *gin.Context) {
	s := h.env.open(c)
	b := h.board(s)
	if !b.Load(s.ctx) {
		httperr.Internal(c, "notices_fetch_failed", "No se pudieron cargar los avisos.")
		return
	}
	httpresp.List(c, b.Items())
}

func (h *NoticeHandler) Create(c *gin.Context) {
	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	b := h.board(s)
	ok := b.Create(s.ctx, domain.Draft{
		Title:     req.Title,
		Body:      req.Body,
		Priority:  domain.Priority(strings.ToLower(strings.TrimSpace(req.Priority))),
		ExpiresAt: h.expiration(req.ExpiresAt),
	})
	if !ok {
		httpresp.Workflow(c, failStatus(s.notes), nil, s.notes)
		return
	}
	httpresp.Workflow(c, http.StatusCreated, b.Items(), s.notes)
}

func (h *NoticeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Aviso inválido.")
		return
	}

	s := h.env.open(c)
	b := h.board(s)
	if !b.Delete(s.ctx, uint(id)) {
		httpresp.Workflow(c, failStatus(s.notes), nil, s.notes)
		return
	}
	httpresp.Workflow(c, http.StatusOK, b.Items(), s.notes)
}
