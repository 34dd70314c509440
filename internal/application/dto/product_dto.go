package dto

// CreateProductRequest entrada para crear un producto.
// Description es puntero para exigir la clave aunque el valor sea vacío.
type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto (PATCH): solo se aplican los campos enviados.
type UpdateProductRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// ProductListRequest filtros del listado de productos.
type ProductListRequest struct {
	Search string
	Page   PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
