package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/model"
)

func sqliteConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

func TestOpenGorm_MigratesSchema(t *testing.T) {
	gormDB, err := OpenGorm(sqliteConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, gormDB.Migrator().HasTable(&model.Equipment{}))
	assert.True(t, gormDB.Migrator().HasColumn(&model.Equipment{}, "last_cleaned_date"))
	assert.True(t, gormDB.Migrator().HasIndex(&model.Equipment{}, "CreatedAt"))
}

func TestOpen_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, closer, err := Open(ctx, sqliteConfig(), zap.NewNop())
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	e := &model.Equipment{
		Name:            "Machine 1",
		Type:            model.TypeMachine,
		Status:          model.StatusActive,
		LastCleanedDate: model.NewDate(2024, time.March, 3),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, s.Insert(ctx, e))
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, closer(ctx))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)

	_, err = OpenGorm(&config.DatabaseConfig{Driver: config.DriverMongo}, zap.NewNop())
	assert.Error(t, err)
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Creates the list index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, EnsureIndexes(context.Background(), mt.Coll))
	})

	mt.Run("Reports failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Message: "index options conflict",
			Name:    "IndexOptionsConflict",
		}))
		assert.Error(mt, EnsureIndexes(context.Background(), mt.Coll))
	})
}
