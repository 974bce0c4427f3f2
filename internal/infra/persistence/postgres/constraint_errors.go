package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"scribe/internal/domain/repository"
	"scribe/internal/errors"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == sqlStateUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == sqlStateForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	return sqlState(err) == sqlStateNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || sqlState(err) == sqlStateCheckViolation
}

// translateWriteError maps constraint violations onto repository sentinels and
// wraps everything else with msg.
func translateWriteError(err error, msg string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return errors.Wrap(repository.ErrDuplicate, msg)
	case isForeignKeyConstraintViolation(err), isNotNullConstraintViolation(err), isCheckConstraintViolation(err):
		return errors.Wrapf(repository.ErrConstraint, "%s: %v", msg, err)
	default:
		return errors.Wrap(err, msg)
	}
}
