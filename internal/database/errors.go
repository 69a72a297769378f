package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes the provisioner reacts to.
const (
	CodeDuplicateObject = "42710"
	CodeDuplicateTable  = "42P07"
	CodeUniqueViolation = "23505"
)

var ErrDuplicateObject = errors.New("object already exists")

// StatementError reports which provisioning step failed.
type StatementError struct {
	Step string
	Err  error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// SQLState extracts the SQLSTATE from a lib/pq or pgx error, or "" if there is none.
func SQLState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func IsDuplicateObject(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateObject) {
		return true
	}

	switch SQLState(err) {
	case CodeDuplicateObject, CodeDuplicateTable:
		return true
	}
	return false
}

// IsUniqueViolation reports rows that break a unique constraint or index.
func IsUniqueViolation(err error) bool {
	return err != nil && SQLState(err) == CodeUniqueViolation
}
