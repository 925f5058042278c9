package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

type AttendanceHandler struct {
	env *Env
}

func NewAttendanceHandler(env *Env) *AttendanceHandler {
	return &AttendanceHandler{env: env}
}

type AttendanceChange struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"estado" binding:"required"`
}

type SaveAttendanceRequest struct {
	Date    string             `json:"fecha" binding:"required"`
	Changes []AttendanceChange `json:"cambios"`
}

type DayResponse struct {
	Date    string                     `json:"fecha"`
	Buckets []ucAppointment.HourBucket `json:"horas"`
	Items   []appointment.View         `json:"citas"`
}

func dayResponse(uc *ucAppointment.Attendance) DayResponse {
	items := uc.Items()
	if items == nil {
		items = []appointment.View{}
	}
	return DayResponse{Date: uc.Date(), Buckets: uc.Buckets(), Items: items}
}

func (h *AttendanceHandler) open(c *gin.Context, s *session, date string) (*ucAppointment.Attendance, bool) {
	if date == "" {
		date = calendar.FormatDate(h.env.now())
	}
	uc := ucAppointment.NewAttendance(h.env.mirror(), s.notifier, h.env.sink())
	if err := uc.Load(s.ctx, date); err != nil {
		httperr.FromError(c, err, "Fecha inválida.")
		return nil, false
	}
	return uc, true
}

// Day devolve as horas do dia com contagem e as citas.
func (h *AttendanceHandler) Day(c *gin.Context) {
	s := h.env.open(c)
	uc, ok := h.open(c, s, c.Query("date"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dayResponse(uc))
}

func (h *AttendanceHandler) Hour(c *gin.Context) {
	hour := c.Query("hour")
	if !appointment.IsAllowedHour(hour) {
		httperr.BadRequest(c, "hour_not_allowed", "Hora inválida.")
		return
	}

	s := h.env.open(c)
	uc, ok := h.open(c, s, c.Query("date"))
	if !ok {
		return
	}
	httpresp.List(c, uc.Bucket(hour))
}

// Save aplica as marcações e grava só o que mudou.
func (h *AttendanceHandler) Save(c *gin.Context) {
	var req SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	uc, ok := h.open(c, s, req.Date)
	if !ok {
		return
	}

	for _, ch := range req.Changes {
		if err := uc.Stage(ch.ID, appointment.Status(ch.Status)); err != nil {
			httperr.FromError(c, err, "Cambio inválido.")
			return
		}
	}

	res := uc.Save(s.ctx)
	status := http.StatusOK
	if res.Failed > 0 {
		status = http.StatusMultiStatus
	}
	httpresp.Workflow(c, status, gin.H{
		"resultado": res,
		"dia":       dayResponse(uc),
	}, s.notes)
}

// Navigate pula para o dia útil anterior (dir=-1) ou seguinte (dir=1).
func (h *AttendanceHandler) Navigate(c *gin.Context) {
	dir, err := strconv.Atoi(c.DefaultQuery("dir", "1"))
	if err != nil {
		httperr.BadRequest(c, "invalid_direction", "Dirección inválida.")
		return
	}

	s := h.env.open(c)
	uc, ok := h.open(c, s, c.Query("date"))
	if !ok {
		return
	}
	if err := uc.Navigate(s.ctx, dir); err != nil {
		httperr.FromError(c, err, "Fecha inválida.")
		return
	}
	c.JSON(http.StatusOK, dayResponse(uc))
}
