package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistic-api/internal/application/dto"
)

// pathID lee :id como entero positivo. false si no es válido (la ruta no corresponde a ningún recurso).
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageQuery lee limit/offset; los valores fuera de rango se ajustan en DefaultPage.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
}

// productFilterQuery lee ?products=<id>. Vacío = sin filtro; no entero = error de validación.
func productFilterQuery(c *fiber.Ctx) (*int64, error) {
	raw := strings.TrimSpace(c.Query("products"))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ValidationError{Details: map[string]string{"products": "must be an integer product id"}}
	}
	return &id, nil
}
