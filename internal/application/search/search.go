// Package search prepara el texto libre de ?search= para los repositorios.
package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Terms separa el texto en términos (espacios y comas) normalizados a NFC.
// Cada término debe coincidir en alguno de los campos buscados (AND entre términos, OR entre campos).
func Terms(q string) []string {
	q = norm.NFC.String(q)
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// Matches indica si todos los términos aparecen (sin distinguir mayúsculas) en alguno de los campos.
// Usado por implementaciones en memoria; PostgreSQL aplica la misma regla con ILIKE.
func Matches(terms []string, fields ...string) bool {
	for _, t := range terms {
		t = strings.ToLower(t)
		found := false
		for _, f := range fields {
			if strings.Contains(strings.ToLower(norm.NFC.String(f)), t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
