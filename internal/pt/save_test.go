package pt

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/policytable/internal/policy"
)

func TestSaveFunctionalGroupings_GroupIDIsStableAcrossCalls(t *testing.T) {
	first := policy.AbsDjb2Hash("Base-4")
	second := policy.AbsDjb2Hash("Base-4")
	assert.Equal(t, first, second, "group id must be stable across drop+reinsert of the same name")
	assert.NotZero(t, first)
}

func TestSave_RollsBackOnSubSaveFailure(t *testing.T) {
	table, mock := newTestTable(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM rpc").WillReturnError(assertErrForSave{})
	mock.ExpectRollback()

	doc := policy.Document{
		FunctionalGroupings: policy.NewSet(map[string]policy.FunctionalGroup{
			"Base-4": {Name: "Base-4"},
		}),
	}

	err := table.Save(context.Background(), doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaveAborted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_CommitsOnSuccess(t *testing.T) {
	table, mock := newTestTable(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM rpc").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM functional_group").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO functional_group").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE module_meta").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	doc := policy.Document{
		FunctionalGroupings: policy.NewSet(map[string]policy.FunctionalGroup{
			"Base-4": {Name: "Base-4"},
		}),
		ModuleMeta: policy.NewSet(policy.ModuleMeta{}),
	}

	err := table.Save(context.Background(), doc)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

type assertErrForSave struct{}

func (assertErrForSave) Error() string { return "boom" }
