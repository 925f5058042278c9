package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

func TestCandidateValidate(t *testing.T) {
	ok := Candidate{ID: " 12345678 ", Name: "Ana Pérez", Phone: "3001234567", Reason: ReasonTherapy}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "12345678", ok.ID)

	cases := []struct {
		name string
		in   Candidate
		code string
	}{
		{"empty id", Candidate{Name: "A", Phone: "1", Reason: ReasonTherapy}, "missing_id"},
		{"alpha id", Candidate{ID: "12a", Name: "A", Phone: "1", Reason: ReasonTherapy}, "invalid_id"},
		{"no name", Candidate{ID: "1", Phone: "1", Reason: ReasonTherapy}, "missing_name"},
		{"alpha phone", Candidate{ID: "1", Name: "A", Phone: "300-123", Reason: ReasonTherapy}, "invalid_phone"},
		{"no reason", Candidate{ID: "1", Name: "A", Phone: "1"}, "invalid_reason"},
		{"bad reason", Candidate{ID: "1", Name: "A", Phone: "1", Reason: "Otro"}, "invalid_reason"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.in.Validate()
			assert.True(t, httperr.IsBusiness(err, c.code), "got %v", err)
		})
	}
}

func TestPatchFields(t *testing.T) {
	phone := "3109998877"
	reason := ReasonAssessment

	fields, err := Patch{Phone: &phone, Reason: &reason}.Fields()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"telefono": phone, "motivo": "Valoracion"}, fields)

	bad := "31x"
	_, err = Patch{Phone: &bad}.Fields()
	assert.True(t, httperr.IsBusiness(err, "invalid_phone"))

	_, err = Patch{}.Fields()
	assert.True(t, httperr.IsBusiness(err, "nothing_to_update"))
}

func TestMatches(t *testing.T) {
	c := models.Client{ID: "12345678", Name: "Ana Pérez"}

	assert.True(t, Matches(c, "ana"))
	assert.True(t, Matches(c, "4567"))
	assert.True(t, Matches(c, ""))
	assert.False(t, Matches(c, "luis"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Terapia Física", ServicePhysical.Label())
	assert.Equal(t, "Valoración", ReasonAssessment.Label())
	assert.Equal(t, "otro", ServiceLabel("otro"))

	_, err := ParseServiceType("masaje")
	assert.True(t, httperr.IsBusiness(err, "invalid_service_type"))
}
