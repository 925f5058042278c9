package appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// View é a cita já resolvida com serviço e paciente, no formato que a agenda usa.
type View struct {
	ID              string `json:"id"`
	ClientServiceID string `json:"clientes_servicio_id"`
	Service         string `json:"servicio"`
	ClientID        string `json:"cliente_id"`
	ClientName      string `json:"cliente_nombre"`
	ClientReason    string `json:"cliente_motivo"`
	Date            string `json:"fecha"`
	Time            string `json:"hora"`
	Status          Status `json:"estado"`
}

// ParseID aceita somente UUIDs gerados pelo store.
func ParseID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FromModel é a fronteira entre o store e o núcleo: rejeita linhas sem o
// join serviço -> paciente, com hora inválida ou status desconhecido.
func FromModel(m models.Appointment) (View, error) {
	if m.ID == uuid.Nil {
		return View{}, fmt.Errorf("appointment without id")
	}
	if m.ClientService == nil {
		return View{}, fmt.Errorf("appointment %s: missing clientes_servicio join", m.ID)
	}
	if m.ClientService.Client == nil {
		return View{}, fmt.Errorf("appointment %s: missing cliente join", m.ID)
	}

	clock, err := NormalizeTime(m.Time)
	if err != nil {
		return View{}, fmt.Errorf("appointment %s: invalid hora %q", m.ID, m.Time)
	}

	status := Status(m.Status)
	if !status.Valid() {
		return View{}, fmt.Errorf("appointment %s: invalid estado %q", m.ID, m.Status)
	}

	return View{
		ID:              m.ID.String(),
		ClientServiceID: m.ClientServiceID.String(),
		Service:         m.ClientService.Service,
		ClientID:        m.ClientService.ClientID,
		ClientName:      m.ClientService.Client.Name,
		ClientReason:    m.ClientService.Client.Reason,
		Date:            FormatStoreDate(m.Date),
		Time:            clock,
		Status:          status,
	}, nil
}

// FromModels converte a lista inteira ou falha na primeira linha inválida.
func FromModels(list []models.Appointment) ([]View, error) {
	out := make([]View, 0, len(list))
	for _, m := range list {
		v, err := FromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
