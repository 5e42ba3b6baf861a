package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
)

const productNotFoundMessage = "Product not found"

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every product in store order, without pagination.
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(r.Context())
	if err != nil {
		respondInternal(w, r, "could not fetch products", err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	respond(w, r, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			respondError(w, r, http.StatusNotFound, productNotFoundMessage)
			return
		}
		respondInternal(w, r, "could not fetch product", err)
		return
	}
	respond(w, r, http.StatusOK, toProductResponse(product))
}
