package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-tracker-backend/internal/model"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// newSQLiteDB opens a private in-memory database with the schema migrated.
func newSQLiteDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Equipment{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newRecord(name string, createdAt time.Time) *model.Equipment {
	return &model.Equipment{
		Name:            name,
		Type:            model.TypeMixer,
		Status:          model.StatusActive,
		LastCleanedDate: model.NewDate(2024, time.January, 1),
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

func TestGormStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewGormStore(newSQLiteDB(t))
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	a := newRecord("A", base)
	b := newRecord("B", base.Add(time.Second))
	c := newRecord("C", base.Add(2*time.Second))
	for _, e := range []*model.Equipment{a, b, c} {
		require.NoError(t, s.Insert(ctx, e))
		assert.True(t, model.ValidID(e.ID), "insert should assign an id")
	}

	t.Run("List is newest first", func(t *testing.T) {
		items, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"C", "B", "A"}, []string{items[0].Name, items[1].Name, items[2].Name})
		assert.Equal(t, "2024-01-01", items[0].LastCleanedDate.String())
	})

	t.Run("Get returns the stored record", func(t *testing.T) {
		got, err := s.Get(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Name)
		assert.True(t, got.CreatedAt.Equal(b.CreatedAt))
	})

	t.Run("Replace overwrites fields and updatedAt", func(t *testing.T) {
		updated := *a
		updated.Status = model.StatusUnderMaintenance
		updated.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, s.Replace(ctx, &updated))

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusUnderMaintenance, got.Status)
		assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
		assert.True(t, got.CreatedAt.Equal(a.CreatedAt), "createdAt must not change")
	})

	t.Run("Replace of a missing id is not found", func(t *testing.T) {
		missing := newRecord("ghost", base)
		missing.ID = model.NewID()
		err := s.Replace(ctx, missing)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete returns the removed record once", func(t *testing.T) {
		removed, err := s.Delete(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "C", removed.Name)

		_, err = s.Delete(ctx, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.Get(ctx, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestGormStore_ListEmpty(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGormStore_ErrorTranslation(t *testing.T) {
	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		call             func(s Store) error
		expectedErr      error
	}{
		{
			name: "Unreachable database is unavailable",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment"`)).
					WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
			},
			call: func(s Store) error {
				_, err := s.List(context.Background())
				return err
			},
			expectedErr: ErrUnavailable,
		},
		{
			name: "No row is not found",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
			},
			call: func(s Store) error {
				_, err := s.Get(context.Background(), model.NewID())
				return err
			},
			expectedErr: ErrNotFound,
		},
		{
			name: "Deadline is passed through",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "equipment"`)).
					WillReturnError(context.DeadlineExceeded)
			},
			call: func(s Store) error {
				_, err := s.List(context.Background())
				return err
			},
			expectedErr: context.DeadlineExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newMockDB(t)
			s := NewGormStore(gormDB)

			tc.mockExpectations(mock)

			err := tc.call(s)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTranslateGormError_Duplicate(t *testing.T) {
	err := translateGormError(gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	assert.Nil(t, translateGormError(nil))

	other := errors.New("boom")
	assert.Equal(t, other, translateGormError(other))
}
