package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	env *Env
}

func NewAppointmentHandler(env *Env) *AppointmentHandler {
	return &AppointmentHandler{env: env}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateAppointmentRequest struct {
	Date            *string `json:"fecha"`
	Time            *string `json:"hora"`
	Status          *string `json:"estado"`
	ClientServiceID *string `json:"clientes_servicio_id"`
}

func (r UpdateAppointmentRequest) changes() appointment.Changes {
	ch := appointment.Changes{
		Date:            r.Date,
		Time:            r.Time,
		ClientServiceID: r.ClientServiceID,
	}
	if r.Status != nil {
		st := appointment.Status(*r.Status)
		ch.Status = &st
	}
	return ch
}

// ======================================================
// LIST
// ======================================================

// List devolve as citas de ?from= a ?to= (inclusivo). Sem parâmetros usa a
// semana corrente.
func (h *AppointmentHandler) List(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		monday, friday := calendar.WeekRange(h.env.now())
		from, to = calendar.FormatDate(monday), calendar.FormatDate(friday)
	}
	if _, err := calendar.ParseDate(from, nil); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inicial inválida.")
		return
	}
	if _, err := calendar.ParseDate(to, nil); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha final inválida.")
		return
	}

	views := h.env.mirror().Fetch(c.Request.Context(), from, to)
	if views == nil {
		httperr.Internal(c, "appointments_fetch_failed", "No se pudieron cargar las citas.")
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// CREATE (agendamento simples)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var form ucAppointment.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	mirror := h.env.mirror()
	if day, err := calendar.ParseDate(form.Date, nil); err == nil {
		monday, friday := calendar.WeekRange(day)
		mirror.Fetch(s.ctx, calendar.FormatDate(monday), calendar.FormatDate(friday))
	}

	booking := ucAppointment.NewSingleBooking(mirror, h.env.Services, s.notifier)
	booking.Fill(form)

	v, err := booking.Submit(s.ctx)
	if err != nil {
		httpresp.Workflow(c, failStatus(s.notes), booking.Form(), s.notes)
		return
	}
	httpresp.Workflow(c, http.StatusCreated, v, s.notes)
}

// ======================================================
// UPDATE / DELETE (edição de uma cita)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	changes := req.changes()
	if _, err := changes.Fields(); err != nil {
		httperr.FromError(c, err, "Cambios inválidos.")
		return
	}

	s := h.env.open(c)
	v, ok := h.env.mirror().Update(s.ctx, c.Param("id"), changes)
	if !ok {
		s.notifier.Error("appointment_not_saved", "No se pudo actualizar la cita")
		httpresp.Workflow(c, http.StatusInternalServerError, nil, s.notes)
		return
	}

	s.notifier.Success(fmt.Sprintf("Cita del %s a las %s actualizada", v.Date, appointment.Format12h(v.Time)))
	httpresp.Workflow(c, http.StatusOK, v, s.notes)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	s := h.env.open(c)
	if !h.env.mirror().Delete(s.ctx, c.Param("id")) {
		s.notifier.Error("appointment_not_deleted", "No se pudo eliminar la cita")
		httpresp.Workflow(c, http.StatusInternalServerError, nil, s.notes)
		return
	}

	s.notifier.Success("Cita eliminada")
	httpresp.Workflow(c, http.StatusOK, nil, s.notes)
}
