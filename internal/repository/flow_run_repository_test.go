package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (*FlowRunRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewFlowRunRepository(db), mock
}

func TestFlowRunRepositoryList(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	id := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "flow_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery(`SELECT \* FROM "flow_runs" ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flow", "provider", "model", "status", "duration_ms", "error", "ats_score", "created_at"}).
			AddRow(id.String(), "analyzeCompatibility", "gemini", "gemini-2.5-flash", model.RunStatusSuccess, 1840, "", 64, created))

	runs, total, err := repo.List(context.Background(), 2, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(23), total)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "analyzeCompatibility", runs[0].Flow)
	require.NotNil(t, runs[0].AtsScore)
	assert.Equal(t, 64, *runs[0].AtsScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlowRunRepositoryCreateAssignsID(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(`INSERT INTO "flow_runs"`).WillReturnResult(sqlmock.NewResult(0, 1))

	run := &model.FlowRun{Flow: "buildResume", Status: model.RunStatusError, Error: "timeout", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), run))

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
