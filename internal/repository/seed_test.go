package repository_test

import (
	"context"
	"testing"

	"taskhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSeedRepository_Reset_WipesAndRepopulates(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	seedRepo := repository.NewSeedRepository(gormDB)

	mock.ExpectBegin()
	for _, table := range []string{
		"payments", "invoices", "comments", "tokens",
		"tasks", "projects", "clients", "users", "positions", "companies",
	} {
		mock.ExpectExec(`DELETE FROM ` + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	// The fixture dataset: 3 companies, 5 users, 7 tasks.
	mock.ExpectExec(`INSERT INTO "companies"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "positions"`).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`INSERT INTO "clients"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "projects"`).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`INSERT INTO "tasks"`).WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()

	err := seedRepo.Reset(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepository_Reset_RollsBackOnDeleteError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	seedRepo := repository.NewSeedRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM payments`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := seedRepo.Reset(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
