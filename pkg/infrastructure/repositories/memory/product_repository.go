package memory

import (
	"fmt"

	"github.com/stocksight/stocksight/pkg/domain/entities"
	"github.com/stocksight/stocksight/pkg/domain/repositories"
)

// ProductRepository provides in-memory product snapshot storage
type ProductRepository struct {
	products []entities.Product
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: []entities.Product{},
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads a product snapshot into the repository
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	for _, p := range products {
		r.products = append(r.products, *p)
	}
	return nil
}

// GetProduct returns one product by id
func (r *ProductRepository) GetProduct(id int64) (*entities.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, fmt.Errorf("product not found: %d", id)
}

// GetAllProducts returns the complete product snapshot
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	var products []*entities.Product
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}
