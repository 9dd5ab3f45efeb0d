package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// notDeleted filtro de borrado lógico; alias vacío para consultas de una sola tabla.
func notDeleted(alias string) string {
	if alias == "" {
		return "deleted_at IS NULL"
	}
	return alias + ".deleted_at IS NULL"
}

// lifecycleColumns columnas de entity.Lifecycle, en el orden de lifecycleDest y lifecycleArgs.
const lifecycleColumns = "created_at, created_by, updated_at, updated_by, deleted_at, deleted_by"

func lifecycleDest(l *entity.Lifecycle) []any {
	return []any{&l.CreatedAt, &l.CreatedBy, &l.UpdatedAt, &l.UpdatedBy, &l.DeletedAt, &l.DeletedBy}
}

func lifecycleArgs(l entity.Lifecycle) []any {
	return []any{l.CreatedAt, l.CreatedBy, l.UpdatedAt, l.UpdatedBy, l.DeletedAt, l.DeletedBy}
}

// strictEnum convierte un valor almacenado; un valor desconocido es un error de datos, nunca un valor por defecto.
func strictEnum[T any](column, raw string, parse func(string) (T, error)) (T, error) {
	v, err := parse(raw)
	if err != nil {
		return v, fmt.Errorf("columna %s: %w", column, err)
	}
	return v, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
