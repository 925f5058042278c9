package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/therapy-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

// BatchHandler expõe o rascunho do agendamento em lote. O rascunho vive no
// DraftStore entre as chamadas, por ator e paciente.
type BatchHandler struct {
	env *Env
}

func NewBatchHandler(env *Env) *BatchHandler {
	return &BatchHandler{env: env}
}

// ======================================================
// REQUESTS / RESPONSE
// ======================================================

type QuantityRequest struct {
	Quantity int `json:"cantidad" binding:"required"`
}

type BatchServiceRequest struct {
	ServiceID string `json:"clientes_servicio_id" binding:"required"`
}

type MonthRequest struct {
	Delta int `json:"delta"`
}

type ToggleRequest struct {
	Date string `json:"fecha" binding:"required"`
}

type EntryTimeRequest struct {
	Hour   string `json:"hora" binding:"required"`
	Minute string `json:"minuto" binding:"required"`
}

type DraftResponse struct {
	Draft    *ucAppointment.Draft        `json:"draft"`
	Calendar []ucAppointment.CalendarDay `json:"calendario"`
	Left     int                         `json:"restantes"`
	Action   string                      `json:"accion,omitempty"`
	Result   *ucAppointment.BatchResult  `json:"resultado,omitempty"`
}

func draftResponse(d *ucAppointment.Draft) DraftResponse {
	return DraftResponse{
		Draft:    d,
		Calendar: d.MonthDays(),
		Left:     d.Quantity - len(d.Entries),
	}
}

// ======================================================
// HELPERS
// ======================================================

func (h *BatchHandler) key(c *gin.Context) string {
	return ucAppointment.DraftKey(c.GetUint(middleware.ContextUserID), c.Param("clientId"))
}

// load devolve o rascunho salvo ou um novo no mês corrente.
func (h *BatchHandler) load(c *gin.Context) (*ucAppointment.Draft, bool) {
	d, err := h.env.Drafts.Load(c.Request.Context(), h.key(c))
	switch {
	case err == nil:
		return d, true
	case errors.Is(err, ucAppointment.ErrDraftNotFound):
		return ucAppointment.NewDraft(c.Param("clientId"), h.env.now()), true
	}

	h.env.Log.Error("draft load failed", zap.String("key", h.key(c)), zap.Error(err))
	httperr.Internal(c, "draft_load_failed", "No se pudo cargar el agendamiento.")
	return nil, false
}

func (h *BatchHandler) save(c *gin.Context, d *ucAppointment.Draft) bool {
	if err := h.env.Drafts.Save(c.Request.Context(), h.key(c), d); err != nil {
		h.env.Log.Error("draft save failed", zap.String("key", h.key(c)), zap.Error(err))
		httperr.Internal(c, "draft_save_failed", "No se pudo guardar el agendamiento.")
		return false
	}
	return true
}

// mutate carrega, aplica fn e grava; erro de fn vira 400 com o código.
func (h *BatchHandler) mutate(c *gin.Context, fn func(d *ucAppointment.Draft) (string, error)) {
	d, ok := h.load(c)
	if !ok {
		return
	}

	action, err := fn(d)
	if err != nil {
		httperr.FromError(c, err, "Cambio inválido.")
		return
	}
	if !h.save(c, d) {
		return
	}

	resp := draftResponse(d)
	resp.Action = action
	c.JSON(http.StatusOK, resp)
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BatchHandler) Get(c *gin.Context) {
	d, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftResponse(d))
}

func (h *BatchHandler) Discard(c *gin.Context) {
	if err := h.env.Drafts.Delete(c.Request.Context(), h.key(c)); err != nil {
		h.env.Log.Error("draft delete failed", zap.String("key", h.key(c)), zap.Error(err))
		httperr.Internal(c, "draft_delete_failed", "No se pudo descartar el agendamiento.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BatchHandler) SetQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_quantity", "Cantidad inválida.")
		return
	}
	h.mutate(c, func(d *ucAppointment.Draft) (string, error) {
		return "", d.SetQuantity(req.Quantity)
	})
}

func (h *BatchHandler) SetService(c *gin.Context) {
	var req BatchServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_service", "Seleccione un servicio.")
		return
	}
	h.mutate(c, func(d *ucAppointment.Draft) (string, error) {
		if err := ucAppointment.CheckService(c.Request.Context(), h.env.Services, h.env.Log, d.ClientID, req.ServiceID); err != nil {
			return "", err
		}
		d.SetService(req.ServiceID)
		return "", nil
	})
}

func (h *BatchHandler) ShiftMonth(c *gin.Context) {
	var req MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	h.mutate(c, func(d *ucAppointment.Draft) (string, error) {
		d.ShiftMonth(req.Delta)
		return "", nil
	})
}

func (h *BatchHandler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}
	h.mutate(c, func(d *ucAppointment.Draft) (string, error) {
		action, err := d.Toggle(req.Date)
		return action.String(), err
	})
}

func (h *BatchHandler) SetEntryTime(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "entry_not_found", "Cita inválida.")
		return
	}

	var req EntryTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_time", "Hora inválida.")
		return
	}
	h.mutate(c, func(d *ucAppointment.Draft) (string, error) {
		return "", d.SetEntryTime(index, req.Hour, req.Minute)
	})
}

// Submit grava a fila. O que sobrar (falha no meio) continua no rascunho;
// fila vazia apaga o rascunho.
func (h *BatchHandler) Submit(c *gin.Context) {
	d, ok := h.load(c)
	if !ok {
		return
	}

	s := h.env.open(c)
	mirror := h.env.mirror()
	if from, to, ok := entrySpan(d.Entries); ok {
		mirror.Fetch(s.ctx, from, to)
	}

	res, err := ucAppointment.NewBatchBooking(mirror, h.env.Services, s.notifier, h.env.sink()).Submit(s.ctx, d)
	if err != nil {
		httpresp.Workflow(c, http.StatusBadRequest, draftResponse(d), s.notes)
		return
	}

	if len(d.Entries) == 0 {
		if err := h.env.Drafts.Delete(s.ctx, h.key(c)); err != nil {
			h.env.Log.Warn("draft cleanup failed", zap.String("key", h.key(c)), zap.Error(err))
		}
	} else if !h.save(c, d) {
		return
	}

	resp := draftResponse(d)
	resp.Result = &res

	status := http.StatusOK
	switch res.Outcome {
	case ucAppointment.BatchComplete:
		status = http.StatusCreated
	case ucAppointment.BatchFailed:
		status = http.StatusInternalServerError
	}
	httpresp.Workflow(c, status, resp, s.notes)
}

func entrySpan(entries []ucAppointment.Entry) (from, to string, ok bool) {
	for i, e := range entries {
		if i == 0 || e.Date < from {
			from = e.Date
		}
		if i == 0 || e.Date > to {
			to = e.Date
		}
	}
	return from, to, len(entries) > 0
}
