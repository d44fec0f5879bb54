package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_CreateWithOTP_Commits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `otp_verifications`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &models.User{
		Name:         "Test User",
		Email:        "user@example.com",
		PasswordHash: "hash",
		RollNumber:   "B21CS001",
	}
	otp := &models.OTPVerification{
		OTPCode:   "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	err := repo.CreateWithOTP(user, otp)
	require.NoError(t, err)
	require.Equal(t, user.Email, otp.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_CreateWithOTP_RollsBackOnOTPFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `otp_verifications`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	user := &models.User{
		Name:         "Test User",
		Email:        "user@example.com",
		PasswordHash: "hash",
		RollNumber:   "B21CS001",
	}
	otp := &models.OTPVerification{
		OTPCode:   "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	err := repo.CreateWithOTP(user, otp)
	require.ErrorIs(t, err, ErrCreateOTP)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_ExistsByEmailOrRoll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("user@example.com", "B21CS001").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.ExistsByEmailOrRoll("user@example.com", "B21CS001")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
