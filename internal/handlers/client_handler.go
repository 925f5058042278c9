package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	ucClient "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/client"
	ucReport "github.com/BruksfildServices01/therapy-scheduler/internal/usecase/report"
)

type ClientHandler struct {
	env *Env
}

func NewClientHandler(env *Env) *ClientHandler {
	return &ClientHandler{env: env}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateClientRequest struct {
	ID     string `json:"id"`
	Name   string `json:"nombre"`
	Phone  string `json:"telefono"`
	Reason string `json:"motivo"`
}

type UpdateClientRequest struct {
	Name   *string `json:"nombre"`
	Phone  *string `json:"telefono"`
	Reason *string `json:"motivo"`
}

type AssignServiceRequest struct {
	Service string `json:"servicio" binding:"required"`
}

// ======================================================
// PACIENTES
// ======================================================

// List aceita ?query= (nome ou documento) e ?with_service=true.
func (h *ClientHandler) List(c *gin.Context) {
	s := h.env.open(c)
	dir := ucClient.NewDirectory(h.env.clientDeps(s))
	if !dir.Load(s.ctx) {
		httperr.Internal(c, "clients_fetch_failed", "No se pudieron cargar los pacientes.")
		return
	}

	items := dir.Items()
	if c.Query("with_service") == "true" {
		all, err := h.env.Services.ListAll(s.ctx)
		if err != nil {
			httperr.Internal(c, "services_fetch_failed", "No se pudieron cargar los servicios.")
			return
		}
		items = dir.WithServices(all)
	}

	if term := strings.TrimSpace(c.Query("query")); term != "" {
		var filtered []models.Client
		for _, cl := range items {
			if domain.Matches(cl, term) {
				filtered = append(filtered, cl)
			}
		}
		items = filtered
	}

	httpresp.List(c, items)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	dir := ucClient.NewDirectory(h.env.clientDeps(s))

	ok := dir.Add(s.ctx, domain.Candidate{
		ID:     req.ID,
		Name:   req.Name,
		Phone:  req.Phone,
		Reason: domain.Reason(req.Reason),
	})
	if !ok {
		httpresp.Workflow(c, failStatus(s.notes), nil, s.notes)
		return
	}

	httpresp.Workflow(c, http.StatusCreated, dir.Items()[0], s.notes)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	id := c.Param("id")

	patch := domain.Patch{Name: req.Name, Phone: req.Phone}
	if req.Reason != nil {
		r := domain.Reason(*req.Reason)
		patch.Reason = &r
	}

	dir := ucClient.NewDirectory(h.env.clientDeps(s))
	if !dir.Update(s.ctx, id, patch) {
		httpresp.Workflow(c, failStatus(s.notes), nil, s.notes)
		return
	}

	row, _ := dir.Get(s.ctx, id)
	httpresp.Workflow(c, http.StatusOK, row, s.notes)
}

// Delete apaga o paciente em cascata e devolve o relatório da cascata.
func (h *ClientHandler) Delete(c *gin.Context) {
	s := h.env.open(c)
	dir := ucClient.NewDirectory(h.env.clientDeps(s))

	rep := dir.Delete(s.ctx, c.Param("id"))
	status := http.StatusOK
	if !rep.OK() {
		status = http.StatusInternalServerError
	}
	httpresp.Workflow(c, status, rep, s.notes)
}

// ======================================================
// SERVIÇOS DO PACIENTE
// ======================================================

func (h *ClientHandler) book(c *gin.Context, s *session) (*ucClient.ServiceBook, bool) {
	book := ucClient.NewServiceBook(h.env.clientDeps(s))
	if !book.Load(s.ctx, c.Param("id")) {
		httperr.Internal(c, "services_fetch_failed", "No se pudieron cargar los servicios.")
		return nil, false
	}
	return book, true
}

func (h *ClientHandler) ListServices(c *gin.Context) {
	s := h.env.open(c)
	book, ok := h.book(c, s)
	if !ok {
		return
	}
	httpresp.List(c, book.Items())
}

func (h *ClientHandler) AssignService(c *gin.Context) {
	var req AssignServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	s := h.env.open(c)
	book, ok := h.book(c, s)
	if !ok {
		return
	}

	if !book.Assign(s.ctx, req.Service) {
		httpresp.Workflow(c, failStatus(s.notes), nil, s.notes)
		return
	}
	httpresp.Workflow(c, http.StatusCreated, book.Items()[0], s.notes)
}

// RemoveService pede ?confirm=true quando o serviço tem citas.
func (h *ClientHandler) RemoveService(c *gin.Context) {
	s := h.env.open(c)
	book, ok := h.book(c, s)
	if !ok {
		return
	}

	res := book.Remove(s.ctx, c.Param("serviceId"), c.Query("confirm") == "true")
	switch res {
	case ucClient.RemoveOK:
		httpresp.Workflow(c, http.StatusOK, gin.H{"result": res}, s.notes)
	case ucClient.RemoveNeedsConfirmation:
		httpresp.Workflow(c, http.StatusConflict, gin.H{"result": res}, s.notes)
	default:
		httpresp.Workflow(c, failStatus(s.notes), gin.H{"result": res}, s.notes)
	}
}

// AllServices lista todas as atribuições com o paciente embutido.
func (h *ClientHandler) AllServices(c *gin.Context) {
	list, err := h.env.Services.ListAll(c.Request.Context())
	if err != nil {
		h.env.Log.Error("services list failed", zap.Error(err))
		httperr.Internal(c, "services_fetch_failed", "No se pudieron cargar los servicios.")
		return
	}
	httpresp.List(c, list)
}

// History agrupa as citas do paciente por serviço.
func (h *ClientHandler) History(c *gin.Context) {
	groups, err := ucReport.NewClientHistory(h.env.Appointments).Groups(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.env.Log.Error("history fetch failed", zap.String("cliente_id", c.Param("id")), zap.Error(err))
		httperr.Internal(c, "history_fetch_failed", "No se pudo cargar el historial.")
		return
	}
	httpresp.List(c, groups)
}
