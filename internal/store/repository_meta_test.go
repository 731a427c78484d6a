package store

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balance-app/balance-sync/internal/logger"
)

func newTestMetaRepo(t *testing.T) (MetaRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewMetaRepository(newDBFromSQL(db), logger.Nop()), mock
}

func TestMetaRepository_DeviceID_Existing(t *testing.T) {
	repo, mock := newTestMetaRepo(t)

	rows := sqlmock.NewRows([]string{"value"}).AddRow("dev-existing")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM device_meta WHERE key = ?")).
		WithArgs("device_id").
		WillReturnRows(rows)

	id, err := repo.DeviceID(testContext())
	require.NoError(t, err)
	assert.Equal(t, "dev-existing", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMetaRepository_DeviceID_GeneratesOnFirstCall(t *testing.T) {
	repo, mock := newTestMetaRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM device_meta WHERE key = ?")).
		WithArgs("device_id").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec("INSERT INTO device_meta").
		WithArgs("device_id", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.DeviceID(testContext())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMetaRepository_Household_Unpaired(t *testing.T) {
	repo, mock := newTestMetaRepo(t)

	mock.ExpectQuery("SELECT value FROM device_meta").
		WithArgs("household_id").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectQuery("SELECT value FROM device_meta").
		WithArgs("peer_device_id").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	household, peer, err := repo.Household(testContext())
	require.NoError(t, err)
	assert.Empty(t, household)
	assert.Empty(t, peer)
}

func TestMetaRepository_SetHousehold(t *testing.T) {
	repo, mock := newTestMetaRepo(t)

	mock.ExpectExec("INSERT INTO device_meta").
		WithArgs("household_id", "hh-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO device_meta").
		WithArgs("peer_device_id", "dev-peer").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SetHousehold(testContext(), "hh-1", "dev-peer"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMetaRepository_LastSyncAt(t *testing.T) {
	repo, mock := newTestMetaRepo(t)

	// до первой синхронизации курсора нет
	mock.ExpectQuery("SELECT value FROM device_meta").
		WithArgs("last_sync_at").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	ts, err := repo.LastSyncAt(testContext())
	require.NoError(t, err)
	assert.Nil(t, ts)

	mock.ExpectQuery("SELECT value FROM device_meta").
		WithArgs("last_sync_at").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1700000000000"))

	ts, err = repo.LastSyncAt(testContext())
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, int64(1700000000000), *ts)
}
