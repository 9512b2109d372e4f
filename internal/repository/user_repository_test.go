package repository_test

import (
	"context"
	"testing"

	"taskhub/internal/model"
	"taskhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "role", "company_ids", "position_id", "company_roles", "avatar", "password"}
}

func TestUserRepository_FindByEmail_CaseInsensitive(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE LOWER\(email\) = .*`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", "Test User", "Test@Example.com", "Manager", "{company-1}", nil, []byte(`[{"companyId":"company-1","role":"Manager"}]`), "", "secret"))

	user, err := userRepo.FindByEmail(context.Background(), "Test@Example.COM")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	// The login path keeps the stored credential.
	assert.Equal(t, "secret", user.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE LOWER\(email\) = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := userRepo.FindByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_NormalizesLegacyCompanyIDs(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE LOWER\(email\) = .*`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := userRepo.Create(context.Background(), &model.User{
		Name:       "Test User",
		Email:      "a@b.com",
		Role:       "Manager",
		CompanyIDs: pq.StringArray{"company-1"},
		Password:   "x",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.CompanyRoleList{
		{CompanyID: "company-1", Role: "Manager"},
	}, created.CompanyRoles)
	assert.Equal(t, "Manager", created.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmailConflict(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE LOWER\(email\) = .*`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("existing-id", "Existing", "a@b.com", "Employee", "{company-1}", nil, []byte(`[]`), "", "pw"))

	// Same email under a different id is a conflict, not an upsert.
	created, err := userRepo.Create(context.Background(), &model.User{
		ID:    "other-id",
		Name:  "Someone Else",
		Email: "a@b.com",
	})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UpsertOnMatchingID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	existing := sqlmock.NewRows(userColumns()).
		AddRow("user-1", "Old Name", "a@b.com", "Employee", "{company-1}", nil, []byte(`[]`), "", "pw")

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE LOWER\(email\) = .*`).WillReturnRows(existing)
	// The upsert re-reads by id and saves the merged record.
	mock.ExpectQuery(`SELECT .* FROM "users" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-1", "Old Name", "a@b.com", "Employee", "{company-1}", nil, []byte(`[]`), "", "pw"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := userRepo.Create(context.Background(), &model.User{
		ID:    "user-1",
		Name:  "New Name",
		Email: "a@b.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "New Name", updated.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByCompany_DualPathMembership(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "users" ORDER BY name`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user-roles", "Role User", "roles@example.com", "Manager", "{}", nil, []byte(`[{"companyId":"company-1","role":"Manager"}]`), "", "pw").
			AddRow("user-legacy", "Legacy User", "legacy@example.com", "Employee", "{company-1}", nil, []byte(`[]`), "", "pw").
			AddRow("user-other", "Other User", "other@example.com", "Employee", "{company-2}", nil, []byte(`[]`), "", "pw"))

	users, err := userRepo.GetByCompany(context.Background(), "company-1")

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "user-roles", users[0].ID)
	assert.Equal(t, "user-legacy", users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
