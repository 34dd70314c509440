package entity

import "time"

// Product representa un producto del catálogo. Puede estar referenciado por posiciones de varios stocks.
type Product struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
