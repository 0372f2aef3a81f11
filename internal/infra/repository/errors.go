package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
)

type operation int

const (
	opRead operation = iota
	opCreate
	opUpdate
	opDelete
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// classify maps store errors onto catalog error codes. Errors it does not
// recognise are returned unchanged.
func classify(err error, op operation) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.BusinessCode(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	switch {
	case isUniqueViolation(err):
		// A unique violation during UPDATE means the pre-check lost a race.
		if op == opUpdate {
			return httperr.ErrBusiness(httperr.CodeConflict)
		}
		return httperr.ErrBusiness(httperr.CodeDuplicate)

	case isForeignKeyViolation(err):
		if op == opDelete {
			return httperr.ErrBusiness(httperr.CodeInUse)
		}
		return httperr.ErrBusiness(httperr.CodeInvalidReference)
	}

	return err
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == sqlStateUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == sqlStateForeignKeyViolation
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
