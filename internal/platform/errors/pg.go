package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the catalog read path distinguishes
const (
	SQLStateUndefinedTable      = "42P01"
	SQLStateUndefinedColumn     = "42703"
	SQLStateReadOnlyTransaction = "25006"
	SQLStateQueryCanceled       = "57014"
	SQLStateCannotConnectNow    = "57P03"
	SQLStateAdminShutdown       = "57P01"
	SQLStateInvalidText         = "22P02"
	SQLStateTooManyConnections  = "53300"
)

// SQLState returns the SQLSTATE of the Postgres error in err's chain, empty when there is none
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsSQLState reports whether err carries the given SQLSTATE
func IsSQLState(err error, state string) bool {
	return state != "" && SQLState(err) == state
}

// PostgresCode maps a SQLSTATE to an ErrorCode, anything unclassified is ErrorCodeDB
func PostgresCode(state string) ErrorCode {
	switch {
	case state == "":
		return ErrorCodeDB
	case strings.HasPrefix(state, "08"), // connection exception class
		state == SQLStateCannotConnectNow,
		state == SQLStateAdminShutdown,
		state == SQLStateTooManyConnections,
		state == SQLStateQueryCanceled,
		state == SQLStateReadOnlyTransaction:
		return ErrorCodeUnavailable
	case state == SQLStateInvalidText:
		return ErrorCodeInvalidArgument
	default:
		return ErrorCodeDB
	}
}

// FromPostgres wraps a database error with msg and the mapped code, nil stays nil
// errors without a SQLSTATE, sqlite included, become ErrorCodeDB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, PostgresCode(SQLState(err)), msg)
}
