package repositories

import (
	"swiftstock/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	List() ([]models.ProductDetail, error)
	Search(prefix string) ([]models.ProductDetail, error)
	Update(product *models.Product) error
	Delete(id int64) error
}
