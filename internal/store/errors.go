package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a store-enforced uniqueness rule is violated.
	ErrDuplicate = errors.New("duplicate key")
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

const pgUniqueViolation = "23505"

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func translateGormError(err error) error {
	if err == nil || isContextError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	var connectErr *pgconn.ConnectError
	var netErr net.Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &connectErr),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}

func translateMongoError(err error) error {
	if err == nil || isContextError(err) {
		return err
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, topology.ErrServerSelectionTimeout):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return err
	}
}
