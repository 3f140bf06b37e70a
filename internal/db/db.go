package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"equipment-tracker-backend/config"
	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// Closer releases the resources behind a Store.
type Closer func(ctx context.Context) error

// Open connects to the configured backend and returns a ready Store.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (store.Store, Closer, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		coll, err := ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closer := func(ctx context.Context) error {
			return coll.Database().Client().Disconnect(ctx)
		}
		return store.NewMongoStore(coll), closer, nil

	case config.DriverPostgres, config.DriverSQLite:
		gormDB, err := OpenGorm(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closer := func(context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return store.NewGormStore(gormDB), closer, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenGorm initializes a relational connection and runs migrations.
func OpenGorm(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("driver %q is not a relational driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Info("Running database migrations", zap.String("driver", cfg.Driver))
	if err := db.AutoMigrate(&model.Equipment{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Info("Database initialization complete", zap.String("driver", cfg.Driver))
	return db, nil
}

// ConnectMongo connects to MongoDB, verifies the connection and ensures the
// index backing the list order exists.
func ConnectMongo(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*mongo.Collection, error) {
	timeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DSN).
		SetServerSelectionTimeout(timeout)
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(cfg.Name).Collection(store.CollectionName)
	if err := EnsureIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("MongoDB connected", zap.String("database", cfg.Name), zap.String("collection", store.CollectionName))
	return coll, nil
}

// EnsureIndexes creates the createdAt index used for newest-first listing.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
