package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/grid"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

type ScheduleHandler struct {
	env *Env
}

func NewScheduleHandler(env *Env) *ScheduleHandler {
	return &ScheduleHandler{env: env}
}

type IntentRequest struct {
	Date string `json:"date"`
	Mode string `json:"mode"`
	grid.Intent
}

// controller monta a grade ancorada em date (hoje quando vazio).
func (h *ScheduleHandler) controller(c *gin.Context, s *session, date, mode string) (*grid.Controller, bool) {
	anchor := h.env.now()
	if date != "" {
		d, err := calendar.ParseDate(date, h.env.Loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return nil, false
		}
		anchor = d
	}

	mirror := h.env.mirror()
	ctl := grid.NewController(
		mirror,
		ucAppointment.NewSingleBooking(mirror, h.env.Services, s.notifier),
		anchor,
		grid.ParseMode(mode),
	)
	ctl.Load(s.ctx)
	return ctl, true
}

// Week desenha a grade da semana de ?date= no modo ?mode=.
func (h *ScheduleHandler) Week(c *gin.Context) {
	s := h.env.open(c)
	ctl, ok := h.controller(c, s, c.Query("date"), c.Query("mode"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctl.Render())
}

// Intents aplica um clique/ação sobre a grade e devolve o desfecho junto
// com a nova âncora e modo.
func (h *ScheduleHandler) Intents(c *gin.Context) {
	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	ctl, ok := h.controller(c, s, req.Date, req.Mode)
	if !ok {
		return
	}

	out, err := ctl.Dispatch(s.ctx, req.Intent)
	if err != nil {
		httperr.FromError(c, err, "Acción inválida.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"anchor":  ctl.Anchor().Format(calendar.DateLayout),
		"mode":    ctl.Mode(),
		"outcome": out,
	})
}
