package report

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/slots"
	"github.com/BruksfildServices01/therapy-scheduler/internal/dto"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
)

// ToRow monta a linha impressa: hora em 12h e status com rótulo.
func ToRow(v appointment.View) dto.FollowUpRowDTO {
	return dto.FollowUpRowDTO{
		Document: v.ClientID,
		Name:     v.ClientName,
		Date:     v.Date,
		Time:     appointment.Format12h(v.Time),
		Status:   v.Status.Label(),
	}
}

// ======================================================
// FOLLOW-UP
// ======================================================

type ListFollowUp struct {
	repo appointment.Repository
}

func NewListFollowUp(repo appointment.Repository) *ListFollowUp {
	return &ListFollowUp{repo: repo}
}

// Execute lista as citas do período. Período sem citas é erro de validação:
// não existe ficha vazia.
func (uc *ListFollowUp) Execute(ctx context.Context, p Period) (*dto.FollowUpSheetDTO, error) {
	rows, err := uc.repo.ListByRange(ctx, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	views, err := appointment.FromModels(rows)
	if err != nil {
		return nil, err
	}
	return Sheet(p, views)
}

// Sheet monta a ficha a partir de citas já carregadas (ex.: dia da asistencia).
func Sheet(p Period, views []appointment.View) (*dto.FollowUpSheetDTO, error) {
	if len(views) == 0 {
		return nil, httperr.ErrBusiness("no_appointments")
	}

	out := &dto.FollowUpSheetDTO{
		Title:    p.Title,
		FileName: p.FileName,
		Rows:     make([]dto.FollowUpRowDTO, 0, len(views)),
	}
	for _, v := range views {
		out.Rows = append(out.Rows, ToRow(v))
	}
	return out, nil
}

// ======================================================
// HISTORY
// ======================================================

type ClientHistory struct {
	repo appointment.Repository
}

func NewClientHistory(repo appointment.Repository) *ClientHistory {
	return &ClientHistory{repo: repo}
}

// Groups devolve o histórico do paciente agrupado por serviço.
func (uc *ClientHistory) Groups(ctx context.Context, clientID string) ([]slots.ServiceHistory, error) {
	rows, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	views, err := appointment.FromModels(rows)
	if err != nil {
		return nil, err
	}
	return slots.History(views, clientID, client.ServiceLabel), nil
}

// Sheet monta o registro de asistencia de um serviço do paciente.
func (uc *ClientHistory) Sheet(ctx context.Context, clientID, service string) (*dto.HistorySheetDTO, error) {
	groups, err := uc.Groups(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if g.Service != service {
			continue
		}

		out := &dto.HistorySheetDTO{
			ClientID:     clientID,
			ClientName:   g.Entries[0].ClientName,
			Service:      g.Service,
			ServiceLabel: g.Label,
			Sessions:     g.Sessions,
			StartDate:    g.StartDate,
			FileName:     "registro_" + strings.ReplaceAll(strings.TrimSpace(g.Entries[0].ClientName), " ", "_") + ".pdf",
		}
		for _, v := range g.Entries {
			out.Rows = append(out.Rows, ToRow(v))
		}
		return out, nil
	}

	return nil, httperr.ErrBusiness("no_appointments")
}
