package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isOutOfRange verifica si un valor no cabe en el tipo de la columna (22003).
func isOutOfRange(err error) bool {
	return hasCode(err, "22003")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern arma el patrón %term% para ILIKE escapando comodines.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
