package client

import "github.com/BruksfildServices01/therapy-scheduler/internal/httperr"

// ServiceType é o tipo de serviço atribuível a um paciente.
type ServiceType string

const (
	ServiceAssessment    ServiceType = "valoracion"
	ServicePhysical      ServiceType = "terapia_fisica"
	ServiceLymphDrainage ServiceType = "drenaje_linfatico"
	ServicePelvicFloor   ServiceType = "piso_pelvico"
	ServiceRespiratory   ServiceType = "terapia_respiratoria"
	ServiceVestibular    ServiceType = "terapia_vestibular"
	ServiceConditioning  ServiceType = "acondicionamiento_fisico"
)

var ServiceTypes = []ServiceType{
	ServiceAssessment,
	ServicePhysical,
	ServiceLymphDrainage,
	ServicePelvicFloor,
	ServiceRespiratory,
	ServiceVestibular,
	ServiceConditioning,
}

var serviceLabels = map[ServiceType]string{
	ServiceAssessment:    "Valoración",
	ServicePhysical:      "Terapia Física",
	ServiceLymphDrainage: "Drenaje Linfático",
	ServicePelvicFloor:   "Piso Pélvico",
	ServiceRespiratory:   "Terapia Respiratoria",
	ServiceVestibular:    "Terapia Vestibular",
	ServiceConditioning:  "Acondicionamiento Físico",
}

func (s ServiceType) Label() string {
	if l, ok := serviceLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s ServiceType) Valid() bool {
	_, ok := serviceLabels[s]
	return ok
}

func ParseServiceType(raw string) (ServiceType, error) {
	s := ServiceType(raw)
	if !s.Valid() {
		return "", httperr.ErrBusiness("invalid_service_type")
	}
	return s, nil
}

// ServiceLabel resolve o rótulo a partir do valor armazenado.
func ServiceLabel(raw string) string {
	return ServiceType(raw).Label()
}
