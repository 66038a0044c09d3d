package pt

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/policytable/internal/logger"
	"github.com/rkhiriev/policytable/internal/store"
)

type fakeSettings struct{}

func (fakeSettings) AppStorageFolder() string       { return "/tmp/policy-test" }
func (fakeSettings) DBFileName() string             { return "policy" }
func (fakeSettings) InMemoryHandle() bool           { return false }
func (fakeSettings) AttemptsToOpenPolicyDB() uint16 { return 3 }
func (fakeSettings) OpenAttemptTimeoutMs() uint16   { return 1 }

func newTestTable(t *testing.T) (*Table, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Table{
		driver:   store.NewWithHandle(db, logger.Nop()),
		settings: fakeSettings{},
		log:      logger.Nop(),
	}, mock
}
