package repositories

import (
	"swiftstock/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return writeError("create product", err)
	}
	return nil
}

// detailQuery selects products with the names of their category and
// supplier. Unresolved references leave the names NULL.
func (r *GORMProductRepository) detailQuery() *gorm.DB {
	return r.db.Table("products").
		Select("products.*, categories.name AS category_name, suppliers.name AS supplier_name").
		Joins("LEFT JOIN categories ON products.category_id = categories.id").
		Joins("LEFT JOIN suppliers ON products.supplier_id = suppliers.id").
		Order("products.id")
}

// List retrieves all products enriched with category and supplier names.
func (r *GORMProductRepository) List() ([]models.ProductDetail, error) {
	products := []models.ProductDetail{}
	if err := r.detailQuery().Scan(&products).Error; err != nil {
		return nil, readError("list products", err)
	}
	return products, nil
}

// Search retrieves the enriched products whose name starts with prefix.
func (r *GORMProductRepository) Search(prefix string) ([]models.ProductDetail, error) {
	if prefix == "" {
		return r.List()
	}
	if !sqlFoldsCase(r.db) {
		all, err := r.List()
		if err != nil {
			return nil, err
		}
		return filterByPrefix(all, prefix, func(p models.ProductDetail) string { return p.Name }), nil
	}
	products := []models.ProductDetail{}
	err := r.detailQuery().
		Where("LOWER(products.name) LIKE ? "+likeEscape, prefixPattern(prefix)).
		Scan(&products).Error
	if err != nil {
		return nil, readError("search products", err)
	}
	return products, nil
}

// Update overwrites every mutable column of the product with the same ID.
func (r *GORMProductRepository) Update(product *models.Product) error {
	err := r.db.Model(product).
		Select("name", "description", "price", "quantity", "image", "expiry_date", "category_id", "supplier_id").
		Updates(product).Error
	if err != nil {
		return writeError("update product", err)
	}
	return nil
}

// Delete removes the product with the given ID, if any.
func (r *GORMProductRepository) Delete(id int64) error {
	if err := r.db.Delete(&models.Product{}, id).Error; err != nil {
		return writeError("delete product", err)
	}
	return nil
}
