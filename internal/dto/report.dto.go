package dto

// FollowUpRowDTO é uma linha da ficha de seguimento.
type FollowUpRowDTO struct {
	Document string `json:"documento"`
	Name     string `json:"nombre"`
	Date     string `json:"fecha"`
	Time     string `json:"hora"`
	Status   string `json:"estado"`
}

// FollowUpSheetDTO é a ficha pronta para o renderizador (PDF/XLSX).
type FollowUpSheetDTO struct {
	Title    string           `json:"titulo"`
	FileName string           `json:"archivo"`
	Rows     []FollowUpRowDTO `json:"filas"`
}

// HistorySheetDTO é o registro de asistencia de um paciente num serviço.
type HistorySheetDTO struct {
	ClientID     string           `json:"cliente_id"`
	ClientName   string           `json:"cliente_nombre"`
	Service      string           `json:"servicio"`
	ServiceLabel string           `json:"servicio_label"`
	Sessions     int              `json:"sesiones"`
	StartDate    string           `json:"fecha_inicio"`
	FileName     string           `json:"archivo"`
	Rows         []FollowUpRowDTO `json:"filas"`
}

type StatusCountDTO struct {
	Scheduled int `json:"programada"`
	Attended  int `json:"asistio"`
	Missed    int `json:"no_asistio"`
	Total     int `json:"total"`
}

type ReasonCountDTO struct {
	Therapy    int `json:"terapia"`
	Assessment int `json:"valoracion"`
	Total      int `json:"total"`
}

type MetricsDTO struct {
	Today          int            `json:"citas_hoy"`
	Week           StatusCountDTO `json:"semana"`
	Month          StatusCountDTO `json:"mes"`
	Patients       ReasonCountDTO `json:"pacientes"`
	NewPatientWeek ReasonCountDTO `json:"pacientes_nuevos_semana"`
	NewPatientMon  ReasonCountDTO `json:"pacientes_nuevos_mes"`
}
