package repositories

import "swiftstock/internal/models"

// SupplierRepository defines the interface for supplier data access.
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	List() ([]models.Supplier, error)
	Search(prefix string) ([]models.Supplier, error)
	Update(supplier *models.Supplier) error
	Delete(id int64) error
}
