package repository

import (
	"context"
	"errors"
	"testing"

	"health_guardian/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserCreate_DuplicateEmailIsConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := NewUserRepository(db).Create(context.Background(), &domain.User{Name: "a", Email: "a@example.com", Password: "x", Role: domain.RoleUser})

	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByEmail_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepository(db).FindByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserIDsByRole(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT `id` FROM `users` WHERE role = \\? ORDER BY id").
		WithArgs(domain.RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(5).AddRow(9))

	ids, err := NewUserRepository(db).IDsByRole(context.Background(), domain.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, []uint{2, 5, 9}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorUpsert_OnConflictUpdatesOwnersRow(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `donors` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT `id` FROM `donors` WHERE user_id = \\?").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	id, err := NewDonorRepository(db).Upsert(context.Background(), &domain.Donor{UserID: 3, BloodType: "O+", Lat: 1, Lng: 2})

	require.NoError(t, err)
	assert.Equal(t, uint(11), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorUpsert_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `donors`").WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := NewDonorRepository(db).Upsert(context.Background(), &domain.Donor{UserID: 3, BloodType: "O+"})

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorList_JoinsOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "user_id", "blood_type", "organ_donor", "lat", "lng", "address", "phone", "name", "email"}).
		AddRow(1, 7, "O+", true, 37.7749, -122.4194, "1 Market St", "555", "Ada", "ada@example.com")
	mock.ExpectQuery("SELECT donors.\\*, users.name, users.email FROM `donors` JOIN users ON users.id = donors.user_id WHERE donors.blood_type = \\?").
		WillReturnRows(rows)

	views, err := NewDonorRepository(db).List(context.Background(), domain.DonorFilter{BloodType: "O+", Limit: 10})

	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, uint(1), v.ID)
	assert.Equal(t, uint(7), v.UserID)
	assert.Equal(t, "Ada", v.Name)
	assert.Equal(t, "ada@example.com", v.Email)
	assert.True(t, v.OrganDonor)
	assert.Equal(t, domain.Location{Lat: 37.7749, Lng: -122.4194, Address: "1 Market St"}, v.Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorFindView_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT donors.\\*").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewDonorRepository(db).FindView(context.Background(), 42)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "donor", nf.Entity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiseaseCreateBatch(t *testing.T) {
	t.Run("empty batch issues no statement", func(t *testing.T) {
		db, mock := setupMockDB(t)
		require.NoError(t, NewDiseaseRepository(db).CreateBatch(context.Background(), nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one insert in one transaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `diseases`").WillReturnResult(sqlmock.NewResult(1, 2))
		mock.ExpectCommit()

		err := NewDiseaseRepository(db).CreateBatch(context.Background(), []domain.Disease{
			{Name: "Flu", Probability: 0.8},
			{Name: "Cholera", Probability: 0.6},
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `diseases`").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := NewDiseaseRepository(db).CreateBatch(context.Background(), []domain.Disease{{Name: "Flu", Probability: 0.8}})

		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDiseaseFindByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `diseases`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewDiseaseRepository(db).FindByID(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertSetActive_Missing(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `alerts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := NewAlertRepository(db).SetActive(context.Background(), 8, false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertSetActive_Updates(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `alerts`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("UPDATE `alerts` SET `active`=\\? WHERE id = \\?").
		WithArgs(false, 8).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewAlertRepository(db).SetActive(context.Background(), 8, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkRead_ScopedToRecipient(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("UPDATE `notifications` SET `is_read`=\\? WHERE \\(?id = \\? AND recipient_id = \\?\\)?").
		WithArgs(true, 3, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := NewNotificationRepository(db).MarkRead(context.Background(), 3, 9)

	require.NoError(t, err)
	assert.Zero(t, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(21, 1))
	sender := uint(1)
	n := &domain.Notification{Type: domain.NotificationAlert, RecipientID: 4, SenderID: &sender, Message: "m", ReferenceID: 2}

	require.NoError(t, NewNotificationRepository(db).Create(context.Background(), n))
	assert.Equal(t, uint(21), n.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationCountUnread(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `notifications` WHERE \\(?recipient_id = \\? AND is_read = \\?\\)?").
		WithArgs(4, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := NewNotificationRepository(db).CountUnread(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
