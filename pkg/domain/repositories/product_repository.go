package repositories

import "github.com/stocksight/stocksight/pkg/domain/entities"

// ProductRepository provides access to the product master snapshot
type ProductRepository interface {
	GetProduct(id int64) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
}
