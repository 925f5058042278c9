package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
	"github.com/BruksfildServices01/therapy-scheduler/internal/testutil"
)

func newDeps(store *testutil.MemStore, notes *notify.Collector, withTx bool) Deps {
	d := Deps{
		Clients:      store.Clients(),
		Services:     store.Services(),
		Appointments: store.Appointments(),
		Log:          zap.NewNop(),
		Notifier:     notes,
	}
	if withTx {
		d.Tx = store
	}
	return d
}

func candidate(id, name string) domain.Candidate {
	return domain.Candidate{ID: id, Name: name, Phone: "3001234567", Reason: domain.ReasonTherapy}
}

// seedClientWithAppointments cria 2 serviços e 3 citas para o paciente.
func seedClientWithAppointments(t *testing.T, store *testutil.MemStore, id string) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Clients().Create(ctx, candidate(id, "Ana Pérez").Model())
	require.NoError(t, err)

	for i, svc := range []string{"terapia_fisica", "valoracion"} {
		cs, err := store.Services().Create(ctx, &models.ClientService{ClientID: id, Service: svc})
		require.NoError(t, err)

		n := 2 - i
		for j := 0; j < n; j++ {
			ap, err := appointment.NewScheduled(cs.ID.String(), "2024-06-10", "09:00")
			require.NoError(t, err)
			_, err = store.Appointments().Create(ctx, ap)
			require.NoError(t, err)
		}
	}
}

// ============================================
// Directory
// ============================================

func TestDirectoryAdd(t *testing.T) {
	store := testutil.NewMemStore()
	notes := notify.NewCollector()
	dir := NewDirectory(newDeps(store, notes, false))
	ctx := context.Background()

	require.True(t, dir.Add(ctx, candidate("12345678", "Ana Pérez")))
	require.True(t, dir.Add(ctx, candidate("87654321", "Luis Gómez")))

	items := dir.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "87654321", items[0].ID, "newest first")

	assert.False(t, dir.Add(ctx, candidate("12345678", "Otra")))
	assert.Equal(t, 2, store.Calls(testutil.OpClientsCreate))
	assert.Equal(t, "duplicate_id", notes.Messages()[2].Code)
}

func TestDirectoryAdd_ValidationSendsNothing(t *testing.T) {
	store := testutil.NewMemStore()
	notes := notify.NewCollector()
	dir := NewDirectory(newDeps(store, notes, false))

	assert.False(t, dir.Add(context.Background(), candidate("", "Ana")))
	assert.False(t, dir.Add(context.Background(), domain.Candidate{ID: "12", Name: "Ana", Phone: "tel", Reason: domain.ReasonTherapy}))

	assert.Equal(t, 0, store.Calls(testutil.OpClientsExists))
	assert.Equal(t, 0, store.Calls(testutil.OpClientsCreate))
	assert.Equal(t, "missing_id", notes.Messages()[0].Code)
	assert.Equal(t, "invalid_phone", notes.Messages()[1].Code)
}

func TestDirectoryUpdateSearchAndFilter(t *testing.T) {
	store := testutil.NewMemStore()
	dir := NewDirectory(newDeps(store, notify.NewCollector(), false))
	ctx := context.Background()

	require.True(t, dir.Add(ctx, candidate("12345678", "Ana Pérez")))
	require.True(t, dir.Add(ctx, candidate("87654321", "Luis Gómez")))

	name := "Ana María Pérez"
	require.True(t, dir.Update(ctx, "12345678", domain.Patch{Name: &name}))

	found := dir.Search("maría")
	require.Len(t, found, 1)
	assert.Equal(t, "12345678", found[0].ID)

	assert.Len(t, dir.Search("4321"), 1)

	with := dir.WithServices([]models.ClientService{{ClientID: "87654321"}})
	require.Len(t, with, 1)
	assert.Equal(t, "Luis Gómez", with[0].Name)

	require.True(t, dir.Load(ctx))
	assert.Len(t, dir.Items(), 2)
}

func TestDirectoryDelete_Cascade(t *testing.T) {
	for _, withTx := range []bool{false, true} {
		store := testutil.NewMemStore()
		seedClientWithAppointments(t, store, "12345678")

		dir := NewDirectory(newDeps(store, notify.NewCollector(), withTx))
		rep := dir.Delete(context.Background(), "12345678")

		assert.Equal(t, CascadeDone, rep.Outcome)
		assert.True(t, rep.OK())
		assert.Equal(t, int64(3), rep.AppointmentsDeleted)
		assert.Equal(t, int64(2), rep.ServicesDeleted)
		assert.Equal(t, 0, store.CountAppointments())
		assert.Equal(t, 0, store.CountServices("12345678"))
		assert.False(t, store.HasClient("12345678"))
	}
}

func TestDirectoryDelete_PartialWithoutTransaction(t *testing.T) {
	store := testutil.NewMemStore()
	seedClientWithAppointments(t, store, "12345678")
	store.FailOn(testutil.OpServicesDeleteBy, nil)

	notes := notify.NewCollector()
	rep := NewDirectory(newDeps(store, notes, false)).Delete(context.Background(), "12345678")

	assert.Equal(t, CascadePartial, rep.Outcome)
	assert.Equal(t, StepDeleteServices, rep.FailedStep)
	assert.Equal(t, int64(3), rep.AppointmentsDeleted)
	assert.Equal(t, 0, store.CountAppointments())
	assert.True(t, store.HasClient("12345678"))
	assert.Equal(t, "cascade_partial", notes.Messages()[0].Code)
}

func TestDirectoryDelete_TransactionRollsBack(t *testing.T) {
	store := testutil.NewMemStore()
	seedClientWithAppointments(t, store, "12345678")
	store.FailOn(testutil.OpClientsDelete, nil)

	rep := NewDirectory(newDeps(store, notify.NewCollector(), true)).Delete(context.Background(), "12345678")

	assert.Equal(t, CascadeFailed, rep.Outcome)
	assert.Equal(t, StepDeleteClient, rep.FailedStep)
	assert.Zero(t, rep.AppointmentsDeleted)
	assert.Equal(t, 3, store.CountAppointments())
	assert.Equal(t, 2, store.CountServices("12345678"))
}

func TestDirectoryDelete_LookupFailure(t *testing.T) {
	store := testutil.NewMemStore()
	seedClientWithAppointments(t, store, "12345678")
	store.FailOn(testutil.OpServicesList, nil)

	rep := NewDirectory(newDeps(store, notify.NewCollector(), false)).Delete(context.Background(), "12345678")
	assert.Equal(t, CascadeFailed, rep.Outcome)
	assert.Equal(t, StepLookupServices, rep.FailedStep)
}

// ============================================
// ServiceBook
// ============================================

func TestServiceBookAssign_RejectsDuplicateBeforeWrite(t *testing.T) {
	store := testutil.NewMemStore()
	notes := notify.NewCollector()
	ctx := context.Background()
	_, err := store.Clients().Create(ctx, candidate("12345678", "Ana").Model())
	require.NoError(t, err)

	book := NewServiceBook(newDeps(store, notes, false))
	require.True(t, book.Load(ctx, "12345678"))

	assert.True(t, book.Assign(ctx, "terapia_fisica"))
	assert.False(t, book.Assign(ctx, "terapia_fisica"))
	assert.Equal(t, 1, store.Calls(testutil.OpServicesCreate))
	assert.Equal(t, "duplicate_service", notes.Messages()[1].Code)

	assert.False(t, book.Assign(ctx, "masaje"))
	assert.Equal(t, 1, store.Calls(testutil.OpServicesCreate))
	assert.Len(t, book.Items(), 1)
}

func TestServiceBookAssign_RequiresLoadedClient(t *testing.T) {
	store := testutil.NewMemStore()
	book := NewServiceBook(newDeps(store, notify.NewCollector(), false))

	assert.False(t, book.Assign(context.Background(), "valoracion"))
	assert.Equal(t, 0, store.Calls(testutil.OpServicesCreate))
}

func TestServiceBookRemove_ConfirmationProtocol(t *testing.T) {
	store := testutil.NewMemStore()
	seedClientWithAppointments(t, store, "12345678")
	ctx := context.Background()

	book := NewServiceBook(newDeps(store, notify.NewCollector(), false))
	require.True(t, book.Load(ctx, "12345678"))

	var target models.ClientService
	for _, cs := range book.Items() {
		if cs.Service == "terapia_fisica" {
			target = cs
		}
	}

	assert.Equal(t, RemoveNeedsConfirmation, book.Remove(ctx, target.ID.String(), false))
	assert.Equal(t, 3, store.CountAppointments())
	assert.Equal(t, 2, store.CountServices("12345678"))

	assert.Equal(t, RemoveOK, book.Remove(ctx, target.ID.String(), true))
	assert.Equal(t, 1, store.CountAppointments())
	assert.Equal(t, 1, store.CountServices("12345678"))
	assert.Len(t, book.Items(), 1)
}

func TestServiceBookRemove_NoDependents(t *testing.T) {
	store := testutil.NewMemStore()
	ctx := context.Background()
	_, err := store.Clients().Create(ctx, candidate("12345678", "Ana").Model())
	require.NoError(t, err)
	cs, err := store.Services().Create(ctx, &models.ClientService{ClientID: "12345678", Service: "valoracion"})
	require.NoError(t, err)

	book := NewServiceBook(newDeps(store, notify.NewCollector(), false))
	require.True(t, book.Load(ctx, "12345678"))
	assert.Equal(t, RemoveOK, book.Remove(ctx, cs.ID.String(), false))
	assert.Equal(t, 0, store.CountServices("12345678"))

	assert.Equal(t, RemoveFailed, book.Remove(ctx, "nope", true))
}

func TestServiceBookRemove_RejectsServiceOfAnotherClient(t *testing.T) {
	store := testutil.NewMemStore()
	ctx := context.Background()
	for id, name := range map[string]string{"12345678": "Ana", "87654321": "Luis"} {
		_, err := store.Clients().Create(ctx, candidate(id, name).Model())
		require.NoError(t, err)
	}
	foreign, err := store.Services().Create(ctx, &models.ClientService{ClientID: "87654321", Service: "valoracion"})
	require.NoError(t, err)

	notes := notify.NewCollector()
	book := NewServiceBook(newDeps(store, notes, false))
	require.True(t, book.Load(ctx, "12345678"))

	assert.Equal(t, RemoveFailed, book.Remove(ctx, foreign.ID.String(), true))
	assert.Equal(t, 1, store.CountServices("87654321"))
	assert.Equal(t, 0, store.Calls(testutil.OpAppointmentsHas))
	assert.Equal(t, 0, store.Calls(testutil.OpServicesDelete))
	require.Len(t, notes.Messages(), 1)
	assert.Equal(t, "invalid_service", notes.Messages()[0].Code)
}
