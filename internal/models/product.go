package models

// Product represents a catalog record. ID is assigned by the store on creation.
type Product struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	CountInStock int     `json:"countInStock" validate:"gte=0"`
}
