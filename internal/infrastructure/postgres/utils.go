package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/pesquera-erp/internal/domain"
)

// seriesNumberConstraintSuffix sufijo de los UNIQUE (series_id, full_number) de cada documento.
const seriesNumberConstraintSuffix = "_series_number_key"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
// Con constraint != "" solo cuenta si la violación es de ese constraint (por sufijo).
func isUniqueViolation(err error, constraintSuffix string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" { // unique_violation
		return false
	}
	return strings.HasSuffix(pgErr.ConstraintName, constraintSuffix)
}

// classify traduce un error del driver a un error de dominio. El mensaje del driver queda
// envuelto (para el log) pero no forma parte del mensaje visible.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("", "%s: record not found", op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return &domain.Error{Kind: domain.KindConflict, Field: pgErr.ConstraintName, Message: op + ": duplicate value", Err: err}
		case "23503": // foreign_key_violation
			return &domain.Error{Kind: domain.KindValidation, Field: pgErr.ConstraintName, Message: op + ": referenced record does not exist"}
		case "23514", "23502": // check_violation, not_null_violation
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return &domain.Error{Kind: domain.KindValidation, Field: field, Message: op + ": invalid value"}
		}
	}
	return domain.Database(op, err)
}

// isUUID evita mandar a PostgreSQL ids que no pueden existir en columnas UUID (error 22P02).
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
