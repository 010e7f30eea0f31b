package repositories

import (
	"swiftstock/internal/models"

	"gorm.io/gorm"
)

// GORMSupplierRepository is a GORM implementation of SupplierRepository.
type GORMSupplierRepository struct {
	db *gorm.DB
}

// NewGORMSupplierRepository creates a new instance of GORMSupplierRepository.
func NewGORMSupplierRepository(db *gorm.DB) *GORMSupplierRepository {
	return &GORMSupplierRepository{
		db: db,
	}
}

// Create inserts a new supplier. A duplicate email fails with ErrConstraintViolation.
func (r *GORMSupplierRepository) Create(supplier *models.Supplier) error {
	if err := r.db.Create(supplier).Error; err != nil {
		return writeError("create supplier", err)
	}
	return nil
}

// List retrieves all suppliers.
func (r *GORMSupplierRepository) List() ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := r.db.Order("id").Find(&suppliers).Error; err != nil {
		return nil, readError("list suppliers", err)
	}
	return suppliers, nil
}

// Search retrieves the suppliers whose name starts with prefix.
func (r *GORMSupplierRepository) Search(prefix string) ([]models.Supplier, error) {
	if prefix == "" {
		return r.List()
	}
	if !sqlFoldsCase(r.db) {
		all, err := r.List()
		if err != nil {
			return nil, err
		}
		return filterByPrefix(all, prefix, func(s models.Supplier) string { return s.Name }), nil
	}
	suppliers := []models.Supplier{}
	err := r.db.Where("LOWER(name) LIKE ? "+likeEscape, prefixPattern(prefix)).
		Order("id").
		Find(&suppliers).Error
	if err != nil {
		return nil, readError("search suppliers", err)
	}
	return suppliers, nil
}

// Update overwrites every mutable column of the supplier with the same ID.
func (r *GORMSupplierRepository) Update(supplier *models.Supplier) error {
	err := r.db.Model(supplier).
		Select("name", "email", "age", "gender", "address", "contact").
		Updates(supplier).Error
	if err != nil {
		return writeError("update supplier", err)
	}
	return nil
}

// Delete removes the supplier with the given ID, if any. Products that
// reference it keep the dangling ID.
func (r *GORMSupplierRepository) Delete(id int64) error {
	if err := r.db.Delete(&models.Supplier{}, id).Error; err != nil {
		return writeError("delete supplier", err)
	}
	return nil
}
