package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/report"
	ucReport "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/report"
)

const (
	contentPDF  = "application/pdf"
	contentXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	env     *Env
	pdf     *report.PDFRenderer
	archive report.Archive
}

// NewReportHandler aceita archive nil (arquivos não são guardados).
func NewReportHandler(env *Env, pdf *report.PDFRenderer, archive report.Archive) *ReportHandler {
	return &ReportHandler{env: env, pdf: pdf, archive: archive}
}

// ======================================================
// HELPERS
// ======================================================

func (h *ReportHandler) period(c *gin.Context) (ucReport.Period, error) {
	anchor := h.env.now()
	if raw := c.Query("date"); raw != "" {
		d, err := calendar.ParseDate(raw, h.env.Loc)
		if err != nil {
			return ucReport.Period{}, httperr.ErrBusiness("invalid_date")
		}
		anchor = d
	}

	switch ucReport.Mode(c.DefaultQuery("mode", string(ucReport.ModeWeek))) {
	case ucReport.ModeWeek:
		return ucReport.WeekPeriod(anchor), nil
	case ucReport.ModeDay:
		return ucReport.DayPeriod(anchor), nil
	case ucReport.ModeMonth:
		year, month := anchor.Year(), anchor.Month()
		if raw := c.Query("year"); raw != "" {
			y, err := strconv.Atoi(raw)
			if err != nil {
				return ucReport.Period{}, httperr.ErrBusiness("invalid_month")
			}
			year = y
		}
		if raw := c.Query("month"); raw != "" {
			m, err := strconv.Atoi(raw)
			if err != nil {
				return ucReport.Period{}, httperr.ErrBusiness("invalid_month")
			}
			month = time.Month(m)
		}
		return ucReport.MonthPeriod(year, month)
	}
	return ucReport.Period{}, httperr.ErrBusiness("invalid_mode")
}

// send arquiva (se configurado) e devolve o arquivo como anexo.
func (h *ReportHandler) send(c *gin.Context, fileName, contentType string, body []byte) {
	report.Keep(c.Request.Context(), h.archive, h.env.Log, report.ArchiveKey(h.env.now(), fileName), body, contentType)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, contentType, body)
}

// ======================================================
// FICHA DE SEGUIMIENTO
// ======================================================

func (h *ReportHandler) FollowUp(c *gin.Context) {
	p, err := h.period(c)
	if err != nil {
		httperr.FromError(c, err, "Periodo inválido.")
		return
	}

	sheet, err := ucReport.NewListFollowUp(h.env.Appointments).Execute(c.Request.Context(), p)
	if err != nil {
		if httperr.IsBusiness(err, "no_appointments") {
			httperr.BadRequest(c, "no_appointments", "No hay citas en el periodo seleccionado.")
			return
		}
		h.env.Log.Error("follow-up fetch failed", zap.String("start", p.Start), zap.String("end", p.End), zap.Error(err))
		httperr.Internal(c, "report_failed", "No se pudo generar el reporte.")
		return
	}

	if c.DefaultQuery("format", "pdf") == "xlsx" {
		body, err := report.FollowUpXLSX(sheet)
		if err != nil {
			h.env.Log.Error("xlsx render failed", zap.Error(err))
			httperr.Internal(c, "report_failed", "No se pudo generar el reporte.")
			return
		}
		h.send(c, strings.TrimSuffix(sheet.FileName, ".pdf")+".xlsx", contentXLSX, body)
		return
	}

	body, err := h.pdf.FollowUp(sheet)
	if err != nil {
		h.env.Log.Error("pdf render failed", zap.Error(err))
		httperr.Internal(c, "report_failed", "No se pudo generar el reporte.")
		return
	}
	h.send(c, sheet.FileName, contentPDF, body)
}

// ======================================================
// REGISTRO DE ASISTENCIA DO PACIENTE
// ======================================================

func (h *ReportHandler) History(c *gin.Context) {
	clientID, service := c.Query("client_id"), c.Query("service")
	if clientID == "" || service == "" {
		httperr.BadRequest(c, "invalid_request", "Paciente y servicio son obligatorios.")
		return
	}

	sheet, err := ucReport.NewClientHistory(h.env.Appointments).Sheet(c.Request.Context(), clientID, service)
	if err != nil {
		if httperr.IsBusiness(err, "no_appointments") {
			httperr.NotFound(c, "no_appointments", "El paciente no tiene citas para este servicio.")
			return
		}
		h.env.Log.Error("history fetch failed", zap.String("cliente_id", clientID), zap.Error(err))
		httperr.Internal(c, "report_failed", "No se pudo generar el reporte.")
		return
	}

	body, err := h.pdf.History(sheet)
	if err != nil {
		h.env.Log.Error("pdf render failed", zap.Error(err))
		httperr.Internal(c, "report_failed", "No se pudo generar el reporte.")
		return
	}
	h.send(c, sheet.FileName, contentPDF, body)
}

// ======================================================
// MÉTRICAS
// ======================================================

func (h *ReportHandler) Metrics(c *gin.Context) {
	out, err := ucReport.NewMetrics(h.env.Appointments, h.env.Clients, h.env.Loc).Execute(c.Request.Context(), h.env.now())
	if err != nil {
		h.env.Log.Error("metrics failed", zap.Error(err))
		httperr.Internal(c, "metrics_failed", "No se pudieron calcular las métricas.")
		return
	}
	c.JSON(http.StatusOK, out)
}
