package pt

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/policytable/internal/policy"
)

func TestClampIgnition_NonNegativeInputs(t *testing.T) {
	assert.Equal(t, 7, clampIgnition(10, 3))
}

func TestClampIgnition_ClampsWhenCurrentExceedsLimit(t *testing.T) {
	assert.Equal(t, 0, clampIgnition(10, 11))
}

func TestClampIgnition_ClampsOnNegativeLimit(t *testing.T) {
	assert.Equal(t, 0, clampIgnition(-1, 3))
}

func TestClampIgnition_ClampsOnNegativeCurrent(t *testing.T) {
	assert.Equal(t, 0, clampIgnition(10, -3))
}

func TestClampExchange_NonNegativeInputs(t *testing.T) {
	assert.Equal(t, 7, clampExchange(10, 2, 5))
}

func TestClampExchange_ClampsWhenConsumedExceedsLimit(t *testing.T) {
	assert.Equal(t, 0, clampExchange(10, 0, 11))
}

func TestClampExchange_ClampsOnNegativeLimit(t *testing.T) {
	assert.Equal(t, 0, clampExchange(-1, 0, 3))
}

func TestClampExchange_ClampsOnCurrentBeforeLast(t *testing.T) {
	assert.Equal(t, 0, clampExchange(10, 5, 2))
}

// Regression: a negative raw input must clamp to 0 even when the derived
// current-last span is itself positive and within limit.
func TestClampExchange_ClampsOnNegativeLastEvenWhenSpanIsWithinLimit(t *testing.T) {
	assert.Equal(t, 0, clampExchange(10, -5, -3))
}

func TestCheckPermissions_AllowedWithParams(t *testing.T) {
	table, mock := newTestTable(t)
	rows := sqlmock.NewRows([]string{"parameter"}).AddRow("mainField1").AddRow("mainField2")
	mock.ExpectQuery("SELECT r.parameter").WithArgs("media-app", "FULL", "Show").WillReturnRows(rows)

	verdict, err := table.CheckPermissions(context.Background(), "media-app", policy.HmiLevelFull, "Show")
	require.NoError(t, err)
	assert.True(t, verdict.HmiLevelPermitted)
	assert.Len(t, verdict.AllowedParams, 2)
}

func TestCheckPermissions_DisallowedWhenNoRows(t *testing.T) {
	table, mock := newTestTable(t)
	rows := sqlmock.NewRows([]string{"parameter"})
	mock.ExpectQuery("SELECT r.parameter").WillReturnRows(rows)

	verdict, err := table.CheckPermissions(context.Background(), "media-app", policy.HmiLevelFull, "Show")
	require.NoError(t, err)
	assert.False(t, verdict.HmiLevelPermitted)
	assert.Empty(t, verdict.AllowedParams)
}

func TestTimeoutResponse_DefaultsTo30OnFailure(t *testing.T) {
	table, mock := newTestTable(t)
	mock.ExpectQuery("SELECT preloaded_pt").WillReturnError(errFixtureForTests{})

	got := table.TimeoutResponse(context.Background())
	assert.Equal(t, 30, got)
}

func TestGetPriorityForApp_ReadsRequestedApp(t *testing.T) {
	table, mock := newTestTable(t)
	rows := sqlmock.NewRows([]string{"priority"}).AddRow("EMERGENCY")
	mock.ExpectQuery("SELECT priority FROM application").WithArgs("media-app").WillReturnRows(rows)

	got, err := table.GetPriorityForApp(context.Background(), "media-app")
	require.NoError(t, err)
	assert.Equal(t, policy.PriorityEmergency, got)
}

func TestIsPTPreloaded_ReadsModuleConfig(t *testing.T) {
	table, mock := newTestTable(t)
	rows := sqlmock.NewRows([]string{"preloaded_pt"}).AddRow(true)
	mock.ExpectQuery("SELECT preloaded_pt FROM module_config").WillReturnRows(rows)

	got, err := table.IsPTPreloaded(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestGetApplicationStatus_RevokedAndNotDefault(t *testing.T) {
	table, mock := newTestTable(t)
	rows := sqlmock.NewRows([]string{"is_revoked", "is_default", "is_null"}).AddRow(true, false, false)
	mock.ExpectQuery("SELECT is_revoked, is_default, is_null FROM application").WithArgs("media-app").WillReturnRows(rows)

	got, err := table.GetApplicationStatus(context.Background(), "media-app")
	require.NoError(t, err)
	assert.True(t, got.Represented)
	assert.True(t, got.Revoked)
	assert.False(t, got.IsDefault)
}

func TestGetInitialAppData_CombinesNicknamesAndHMITypes(t *testing.T) {
	table, mock := newTestTable(t)
	nicknameRows := sqlmock.NewRows([]string{"nickname"}).AddRow("Radio")
	mock.ExpectQuery("SELECT nickname FROM nickname").WithArgs("media-app").WillReturnRows(nicknameRows)
	hmiRows := sqlmock.NewRows([]string{"hmi_type"}).AddRow("MEDIA")
	mock.ExpectQuery("SELECT hmi_type FROM app_hmi_type").WithArgs("media-app").WillReturnRows(hmiRows)

	nicknames, hmiTypes, err := table.GetInitialAppData(context.Background(), "media-app")
	require.NoError(t, err)
	assert.Equal(t, []string{"Radio"}, nicknames)
	assert.Equal(t, []policy.AppHMIType{policy.AppHMITypeMedia}, hmiTypes)
}

type errFixtureForTests struct{}

func (errFixtureForTests) Error() string { return "boom" }
