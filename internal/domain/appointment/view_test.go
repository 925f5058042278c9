package appointment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

func joinedAppointment(t *testing.T) models.Appointment {
	t.Helper()

	d, err := ParseStoreDate("2024-06-10")
	require.NoError(t, err)

	serviceID := uuid.New()
	return models.Appointment{
		ID:              uuid.New(),
		ClientServiceID: serviceID,
		ClientService: &models.ClientService{
			ID:       serviceID,
			ClientID: "12345678",
			Service:  "terapia_fisica",
			Client:   &models.Client{ID: "12345678", Name: "Ana Pérez", Reason: "Terapia"},
		},
		Date:   d,
		Time:   "09:00",
		Status: "programada",
	}
}

func TestFromModel_MapsJoinedRow(t *testing.T) {
	m := joinedAppointment(t)

	v, err := FromModel(m)
	require.NoError(t, err)

	assert.Equal(t, m.ID.String(), v.ID)
	assert.Equal(t, "2024-06-10", v.Date)
	assert.Equal(t, "09:00:00", v.Time)
	assert.Equal(t, "Ana Pérez", v.ClientName)
	assert.Equal(t, "12345678", v.ClientID)
	assert.Equal(t, "terapia_fisica", v.Service)
	assert.Equal(t, StatusScheduled, v.Status)
}

func TestFromModel_RejectsShapeMismatch(t *testing.T) {
	noService := joinedAppointment(t)
	noService.ClientService = nil
	_, err := FromModel(noService)
	assert.Error(t, err)

	noClient := joinedAppointment(t)
	noClient.ClientService.Client = nil
	_, err = FromModel(noClient)
	assert.Error(t, err)

	badStatus := joinedAppointment(t)
	badStatus.Status = "cancelled"
	_, err = FromModel(badStatus)
	assert.Error(t, err)

	_, err = FromModels([]models.Appointment{joinedAppointment(t), noService})
	assert.Error(t, err)
}

func TestNewScheduled(t *testing.T) {
	sid := uuid.New()

	ap, err := NewScheduled(sid.String(), "2024-06-10", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", ap.Time)
	assert.Equal(t, string(StatusScheduled), ap.Status)
	assert.Equal(t, "2024-06-10", FormatStoreDate(ap.Date))

	_, err = NewScheduled("", "2024-06-10", "09:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))

	_, err = NewScheduled(sid.String(), "10/06/2024", "09:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestChangesFields(t *testing.T) {
	status := StatusAttended
	clock := "08:15"

	fields, err := Changes{Status: &status, Time: &clock}.Fields()
	require.NoError(t, err)
	assert.Equal(t, "asistio", fields["estado"])
	assert.Equal(t, "08:15:00", fields["hora"])

	_, err = Changes{}.Fields()
	assert.True(t, httperr.IsBusiness(err, "nothing_to_update"))
}

func TestChangesFields_RejectsOutsideSchedule(t *testing.T) {
	for raw, code := range map[string]string{
		"03:07": "hour_not_allowed",
		"12:00": "hour_not_allowed",
		"09:07": "minute_not_allowed",
	} {
		clock := raw
		_, err := Changes{Time: &clock}.Fields()
		assert.True(t, httperr.IsBusiness(err, code), raw)
	}

	saturday := "2024-06-08"
	_, err := Changes{Date: &saturday}.Fields()
	assert.True(t, httperr.IsBusiness(err, "weekend_not_allowed"))

	monday := "2024-06-10"
	fields, err := Changes{Date: &monday}.Fields()
	require.NoError(t, err)
	assert.Contains(t, fields, "fecha")
}

func TestParseSlotDate(t *testing.T) {
	_, err := ParseSlotDate("2024-06-09")
	assert.True(t, httperr.IsBusiness(err, "weekend_not_allowed"))

	_, err = ParseSlotDate("2024-13-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	d, err := ParseSlotDate("2024-06-11")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", FormatStoreDate(d))
}
