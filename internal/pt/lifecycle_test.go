package pt

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/policytable/internal/store"
)

func TestInit_NewFileCreatesAndSeedsSchema(t *testing.T) {
	table, mock := newTestTable(t)

	pageCountRows := sqlmock.NewRows([]string{"page_count"}).AddRow(0)
	mock.ExpectQuery("PRAGMA page_count").WillReturnRows(pageCountRows)
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO module_meta").WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := table.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitSucceeded, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInit_ExistingFileFirstRunCompletesTransition(t *testing.T) {
	table, mock := newTestTable(t)

	pageCountRows := sqlmock.NewRows([]string{"page_count"}).AddRow(4)
	mock.ExpectQuery("PRAGMA page_count").WillReturnRows(pageCountRows)
	integrityRows := sqlmock.NewRows([]string{"integrity_check"}).AddRow("ok")
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(integrityRows)
	firstRunRows := sqlmock.NewRows([]string{"is_first_run"}).AddRow(true)
	mock.ExpectQuery("SELECT is_first_run").WillReturnRows(firstRunRows)
	mock.ExpectExec("UPDATE lifecycle_flag").WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := table.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitSucceeded, result)
}

func TestInit_ExistingFileAlreadyInitializedReturnsExists(t *testing.T) {
	table, mock := newTestTable(t)

	pageCountRows := sqlmock.NewRows([]string{"page_count"}).AddRow(4)
	mock.ExpectQuery("PRAGMA page_count").WillReturnRows(pageCountRows)
	integrityRows := sqlmock.NewRows([]string{"integrity_check"}).AddRow("ok")
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(integrityRows)
	firstRunRows := sqlmock.NewRows([]string{"is_first_run"}).AddRow(false)
	mock.ExpectQuery("SELECT is_first_run").WillReturnRows(firstRunRows)

	result, err := table.Init(context.Background())
	require.NoError(t, err)
	assert.Equal(t, InitExists, result)
}

func TestInit_IntegrityCheckFailureReturnsFail(t *testing.T) {
	table, mock := newTestTable(t)

	pageCountRows := sqlmock.NewRows([]string{"page_count"}).AddRow(4)
	mock.ExpectQuery("PRAGMA page_count").WillReturnRows(pageCountRows)
	integrityRows := sqlmock.NewRows([]string{"integrity_check"}).AddRow("corruption found")
	mock.ExpectQuery("PRAGMA integrity_check").WillReturnRows(integrityRows)

	result, err := table.Init(context.Background())
	require.Error(t, err)
	assert.Equal(t, InitFailed, result)
	assert.ErrorIs(t, err, ErrIntegrityCheckFailed)
}

func TestIsDBVersionActual_MatchesCurrentSchemaHash(t *testing.T) {
	table, mock := newTestTable(t)

	rows := sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(0, 0, 0, false, store.GetDBVersion())
	mock.ExpectQuery("SELECT pt_exchanged_at_odometer_x").WillReturnRows(rows)

	ok, err := table.IsDBVersionActual(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsDBVersionActual_FalseOnMismatch(t *testing.T) {
	table, mock := newTestTable(t)

	rows := sqlmock.NewRows([]string{"a", "b", "c", "d", "e"}).AddRow(0, 0, 0, false, store.GetDBVersion()+1)
	mock.ExpectQuery("SELECT pt_exchanged_at_odometer_x").WillReturnRows(rows)

	ok, err := table.IsDBVersionActual(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
