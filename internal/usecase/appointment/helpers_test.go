package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
	"github.com/BruksfildServices01/therapy-scheduler/internal/testutil"
)

type fixture struct {
	store     *testutil.MemStore
	mirror    *Mirror
	notes     *notify.Collector
	serviceID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewMemStore()
	ctx := context.Background()

	_, err := store.Clients().Create(ctx, &models.Client{
		ID:     "12345678",
		Name:   "Ana Pérez",
		Phone:  "3001234567",
		Reason: "Terapia",
	})
	require.NoError(t, err)

	cs, err := store.Services().Create(ctx, &models.ClientService{
		ClientID: "12345678",
		Service:  "terapia_fisica",
	})
	require.NoError(t, err)

	return &fixture{
		store:     store,
		mirror:    NewMirror(store.Appointments(), zap.NewNop(), audit.Nop{}),
		notes:     notify.NewCollector(),
		serviceID: cs.ID.String(),
	}
}

// otherService cadastra um segundo paciente com servicio próprio.
func (f *fixture) otherService(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	_, err := f.store.Clients().Create(ctx, &models.Client{
		ID:     "87654321",
		Name:   "Luis Gómez",
		Phone:  "3109876543",
		Reason: "Valoración",
	})
	require.NoError(t, err)

	cs, err := f.store.Services().Create(ctx, &models.ClientService{
		ClientID: "87654321",
		Service:  "valoracion",
	})
	require.NoError(t, err)
	return cs.ID.String()
}
