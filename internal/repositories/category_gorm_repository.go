package repositories

import (
	"swiftstock/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create inserts a new category and stores the allocated ID in category.ID.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return writeError("create category", err)
	}
	return nil
}

// List retrieves all categories.
func (r *GORMCategoryRepository) List() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, readError("list categories", err)
	}
	return categories, nil
}

// Search retrieves the categories whose name starts with prefix.
func (r *GORMCategoryRepository) Search(prefix string) ([]models.Category, error) {
	if prefix == "" {
		return r.List()
	}
	if !sqlFoldsCase(r.db) {
		all, err := r.List()
		if err != nil {
			return nil, err
		}
		return filterByPrefix(all, prefix, func(c models.Category) string { return c.Name }), nil
	}
	categories := []models.Category{}
	err := r.db.Where("LOWER(name) LIKE ? "+likeEscape, prefixPattern(prefix)).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, readError("search categories", err)
	}
	return categories, nil
}

// Update overwrites every mutable column of the category with the same ID.
// Updating a missing ID affects nothing and is not an error.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	err := r.db.Model(category).
		Select("name", "description").
		Updates(category).Error
	if err != nil {
		return writeError("update category", err)
	}
	return nil
}

// Delete removes the category with the given ID, if any.
func (r *GORMCategoryRepository) Delete(id int64) error {
	if err := r.db.Delete(&models.Category{}, id).Error; err != nil {
		return writeError("delete category", err)
	}
	return nil
}
