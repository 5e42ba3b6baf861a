package handlers

import (
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
)

var productRepo repo.ProductRepository

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}
