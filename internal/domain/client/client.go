package client

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// ===============================
// Motivo
// ===============================

type Reason string

const (
	ReasonTherapy    Reason = "Terapia"
	ReasonAssessment Reason = "Valoracion"
)

var Reasons = []Reason{ReasonTherapy, ReasonAssessment}

func (r Reason) Label() string {
	if r == ReasonAssessment {
		return "Valoración"
	}
	return string(r)
}

func (r Reason) Valid() bool {
	return r == ReasonTherapy || r == ReasonAssessment
}

// ===============================
// Candidate
// ===============================

// Candidate é o formulário de cadastro de paciente.
type Candidate struct {
	ID     string `validate:"required,number,max=20"`
	Name   string `validate:"required,max=150"`
	Phone  string `validate:"required,number,max=20"`
	Reason Reason `validate:"required,oneof=Terapia Valoracion"`
}

// Patch é a edição de um paciente existente. O documento nunca muda.
type Patch struct {
	Name   *string `validate:"omitempty,min=1,max=150"`
	Phone  *string `validate:"omitempty,number,max=20"`
	Reason *Reason `validate:"omitempty,oneof=Terapia Valoracion"`
}

var validate = validator.New()

// Validate traduz falhas do validator em códigos de negócio por campo.
func (c *Candidate) Validate() error {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)

	if c.ID == "" {
		return httperr.ErrBusiness("missing_id")
	}
	return businessError(validate.Struct(c))
}

func (p Patch) Validate() error {
	return businessError(validate.Struct(p))
}

// Fields converte o patch nas colunas de clientes.
func (p Patch) Fields() (map[string]any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if p.Name != nil {
		fields["nombre"] = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		fields["telefono"] = strings.TrimSpace(*p.Phone)
	}
	if p.Reason != nil {
		fields["motivo"] = string(*p.Reason)
	}
	if len(fields) == 0 {
		return nil, httperr.ErrBusiness("nothing_to_update")
	}
	return fields, nil
}

func (c Candidate) Model() *models.Client {
	return &models.Client{
		ID:     c.ID,
		Name:   c.Name,
		Phone:  c.Phone,
		Reason: string(c.Reason),
	}
}

func businessError(err error) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return httperr.ErrBusiness("invalid_client")
	}

	fe := verrs[0]
	switch fe.Field() {
	case "ID":
		if fe.Tag() == "required" {
			return httperr.ErrBusiness("missing_id")
		}
		return httperr.ErrBusiness("invalid_id")
	case "Name":
		return httperr.ErrBusiness("missing_name")
	case "Phone":
		if fe.Tag() == "required" {
			return httperr.ErrBusiness("missing_phone")
		}
		return httperr.ErrBusiness("invalid_phone")
	case "Reason":
		return httperr.ErrBusiness("invalid_reason")
	}
	return httperr.ErrBusiness("invalid_client")
}

// Matches é a busca da lista de pacientes: nome ou documento, sem caixa.
func Matches(c models.Client, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.ID), term)
}
