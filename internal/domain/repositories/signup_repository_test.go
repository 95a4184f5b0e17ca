package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func signupColumns() []string {
	return []string{
		"id", "email", "signup_source", "utm_source", "utm_medium",
		"utm_campaign", "referrer", "ip_address", "user_agent",
		"status", "created_at", "updated_at",
	}
}

func TestCreateAssignsStoreID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`INSERT INTO "social_signups"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	signup := &entities.SocialSignup{
		Email:     "lead@example.com",
		Status:    entities.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	err := repo.Create(context.Background(), signup)
	require.NoError(t, err)

	assert.Equal(t, id, signup.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllOrdersNewestFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	newer := uuid.New()
	older := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(signupColumns()).
		AddRow(newer.String(), "b@example.com", "doozasocial_api", nil, nil, nil, nil, "unknown", "unknown", "pending", now, nil).
		AddRow(older.String(), "a@example.com", "doozasocial_api", nil, nil, nil, nil, "unknown", "unknown", "verified", now.Add(-time.Hour), nil)

	mock.ExpectQuery(`SELECT \* FROM "social_signups" ORDER BY created_at DESC`).
		WillReturnRows(rows)

	signups, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	require.Len(t, signups, 2)
	assert.Equal(t, newer, signups[0].ID)
	assert.Equal(t, entities.StatusVerified, signups[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "social_signups"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusReturnsUpdatedRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE "social_signups" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "social_signups" WHERE id = `).
		WillReturnRows(sqlmock.NewRows(signupColumns()).
			AddRow(id.String(), "lead@example.com", "doozasocial_api", nil, nil, nil, nil, "unknown", "unknown", "verified", now.Add(-time.Hour), now))

	signup, err := repo.UpdateStatus(context.Background(), id, entities.StatusVerified)
	require.NoError(t, err)

	assert.Equal(t, id, signup.ID)
	assert.Equal(t, entities.StatusVerified, signup.Status)
	require.NotNil(t, signup.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusUnknownID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	mock.ExpectExec(`UPDATE "social_signups" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateStatus(context.Background(), uuid.New(), entities.StatusActive)
	assert.ErrorIs(t, err, ErrSignupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSignupRepository(db)

	mock.ExpectExec(`DELETE FROM "social_signups"`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
