package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/policytable/internal/logger"
)

func newTestDriver(t *testing.T) (*Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Driver{handle: db, log: logger.Nop()}, mock
}

func TestDriver_IsReadWrite_TrueWhenHandleOpen(t *testing.T) {
	d, _ := newTestDriver(t)
	assert.True(t, d.IsReadWrite())
}

func TestDriver_IsReadWrite_FalseWithoutHandle(t *testing.T) {
	d := &Driver{log: logger.Nop()}
	assert.False(t, d.IsReadWrite())
}

func TestDriver_IsReadWrite_FalseAfterRecordedError(t *testing.T) {
	d, _ := newTestDriver(t)
	d.hasErrors = true
	assert.False(t, d.IsReadWrite())
}

func TestDriver_HasErrors_FalseInitially(t *testing.T) {
	d, _ := newTestDriver(t)
	assert.False(t, d.HasErrors())
}

func TestDriver_Exec_Success(t *testing.T) {
	d, mock := newTestDriver(t)
	mock.ExpectExec("UPDATE module_meta").WithArgs(1, 2).WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := d.Exec(context.Background(), "UPDATE module_meta SET a = ? WHERE b = ?", 1, 2)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_Exec_PropagatesError(t *testing.T) {
	d, mock := newTestDriver(t)
	mock.ExpectExec("UPDATE module_meta").WillReturnError(assertErr)

	_, err := d.Exec(context.Background(), "UPDATE module_meta SET a = ?", 1)
	require.Error(t, err)
}

func TestDriver_Query_ReturnsRows(t *testing.T) {
	d, mock := newTestDriver(t)
	rows := sqlmock.NewRows([]string{"app_id"}).AddRow("default").AddRow("pre_DataConsent")
	mock.ExpectQuery("SELECT app_id FROM application").WillReturnRows(rows)

	got, err := d.Query(context.Background(), "SELECT app_id FROM application")
	require.NoError(t, err)
	defer got.Close()

	var ids []string
	for got.Next() {
		var id string
		require.NoError(t, got.Scan(&id))
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"default", "pre_DataConsent"}, ids)
}

func TestDriver_BeginTransaction_CommitReleasesHandle(t *testing.T) {
	d, mock := newTestDriver(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := d.BeginTransaction(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.CommitTransaction())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_BeginTransaction_RollbackOnFailure(t *testing.T) {
	d, mock := newTestDriver(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := d.BeginTransaction(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.RollbackTransaction())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriver_DeleteFile_MissingFileIsNotError(t *testing.T) {
	d, _ := newTestDriver(t)
	assert.True(t, d.DeleteFile("/nonexistent/path/that/should/not/exist/policy"))
}

var assertErr = errFixture{}

type errFixture struct{}

func (errFixture) Error() string { return "fixture error" }
