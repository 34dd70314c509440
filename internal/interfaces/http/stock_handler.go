package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistic-api/internal/application/dto"
	"github.com/jhoicas/logistic-api/internal/application/inventory"
)

// StockHandler maneja las peticiones HTTP para Stock y sus posiciones.
type StockHandler struct {
	uc       *inventory.StockUseCase
	validate *Validator
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, validate *Validator) *StockHandler {
	return &StockHandler{uc: uc, validate: validate}
}

// List godoc
// @Summary      Listar stocks
// @Description  Con products=<id> solo devuelve stocks con ese producto y restringe positions/products a él.
// @Tags         stocks
// @Produce      json
// @Param        products  query  int     false  "ID de producto"
// @Param        search    query  string  false  "Términos (address y títulos de productos)"
// @Param        ordering  query  string  false  "id, -id, address, -address"  default(id)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.StockListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/ [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	productID, err := productFilterQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), dto.StockListRequest{
		ProductID: productID,
		Search:    c.Query("search"),
		Ordering:  c.Query("ordering"),
		Page:      pageQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear stock con posiciones
// @Description  "product" acepta un id (número o texto) o un objeto con "id". Todo o nada.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "Stock y posiciones"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/ [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener stock por ID
// @Tags         stocks
// @Produce      json
// @Param        id        path   int  true   "ID del stock"
// @Param        products  query  int  false  "Restringe positions/products a este producto"
// @Success      200       {object}  dto.StockResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{id}/ [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	productID, err := productFilterQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Actualizar stock
// @Description  Si "positions" viene, se sincroniza: upsert de las enviadas y borrado del resto. Sin "positions" no se tocan.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del stock"
// @Param        body  body  dto.UpdateStockRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{id}/ [patch]
func (h *StockHandler) Patch(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.update(c, id, in)
}

// Put godoc
// @Summary      Reemplazar stock
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del stock"
// @Param        body  body  dto.ReplaceStockRequest  true  "Stock completo"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{id}/ [put]
func (h *StockHandler) Put(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	var in dto.ReplaceStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	return h.update(c, id, dto.UpdateStockRequest{Address: in.Address, Positions: in.Positions})
}

func (h *StockHandler) update(c *fiber.Ctx, id int64, in dto.UpdateStockRequest) error {
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateFromRequest(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar stock (y sus posiciones)
// @Tags         stocks
// @Param        id   path  int  true  "ID del stock"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/stocks/{id}/ [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
