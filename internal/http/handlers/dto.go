package handlers

import "github.com/rogerio-castellano/product-catalog/internal/models"

type ProductResponse struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	CountInStock int     `json:"countInStock"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Image:        p.Image,
		CountInStock: p.CountInStock,
	}
}
