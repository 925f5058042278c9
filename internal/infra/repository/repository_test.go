package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// ============================================
// Appointments
// ============================================

func TestAppointmentListByRange_LoadsJoins(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentGormRepository(db)

	apID := uuid.New()
	csID := uuid.New()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "citas" WHERE fecha >= \$1 AND fecha <= \$2 ORDER BY fecha ASC,hora ASC`).
		WithArgs("2024-06-10", "2024-06-14").
		WillReturnRows(sqlmock.NewRows([]string{"id", "clientes_servicio_id", "fecha", "hora", "estado"}).
			AddRow(apID.String(), csID.String(), day, "09:00:00", "programada"))

	mock.ExpectQuery(`SELECT \* FROM "clientes_servicio" WHERE "clientes_servicio"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "servicio"}).
			AddRow(csID.String(), "12345678", "terapia_fisica"))

	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE "clientes"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "telefono", "motivo"}).
			AddRow("12345678", "Ana Pérez", "3001234567", "Terapia"))

	list, err := repo.ListByRange(context.Background(), "2024-06-10", "2024-06-14")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, apID, got.ID)
	assert.Equal(t, "09:00:00", got.Time)
	require.NotNil(t, got.ClientService)
	assert.Equal(t, "terapia_fisica", got.ClientService.Service)
	require.NotNil(t, got.ClientService.Client)
	assert.Equal(t, "Ana Pérez", got.ClientService.Client.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentListByRange_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "citas"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByRange(context.Background(), "2024-06-10", "2024-06-14")
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentHasForService(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentGormRepository(db)
	csID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "citas" WHERE clientes_servicio_id = \$1 LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	ok, err := repo.HasForService(context.Background(), csID)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(`SELECT "id" FROM "citas" WHERE clientes_servicio_id = \$1 LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ok, err = repo.HasForService(context.Background(), csID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDelete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectExec(`DELETE FROM "citas" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDeleteByServices(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAppointmentGormRepository(db)

	n, err := repo.DeleteByServices(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	mock.ExpectExec(`DELETE FROM "citas" WHERE clientes_servicio_id IN \(\$1,\$2\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err = repo.DeleteByServices(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// Clients / services
// ============================================

func TestClientExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectQuery(`SELECT "id" FROM "clientes" WHERE id = \$1 LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("12345678"))

	ok, err := repo.Exists(context.Background(), "12345678")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientGet_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceListByClient_Order(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewServiceGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "clientes_servicio" WHERE cliente_id = \$1 ORDER BY fecha_asignacion DESC`).
		WithArgs("12345678").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "servicio"}).
			AddRow(uuid.New().String(), "12345678", "valoracion").
			AddRow(uuid.New().String(), "12345678", "terapia_fisica"))

	list, err := repo.ListByClient(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// Notices / transactions
// ============================================

func TestNoticePurgeExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNoticeGormRepository(db)
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "avisos" WHERE fecha_expiracion < \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactor_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	tx := NewGormTransactor(db)
	services := NewServiceGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "clientes_servicio" WHERE cliente_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := services.DeleteByClient(ctx, "12345678"); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// Audit
// ============================================

func TestAuditList_FiltersAndPages(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuditGormRepository(db)

	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = \$1 AND created_at >= \$2 ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity", "entity_id", "created_at"}).
			AddRow(3, "service_removed", "clientes_servicio", "abc", from))

	logs, total, err := repo.List(context.Background(), audit.Filter{Action: "service_removed", From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "service_removed", logs[0].Action)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditList_CountError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuditGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs"`).WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(context.Background(), audit.Filter{})
	assert.Error(t, err)
}
