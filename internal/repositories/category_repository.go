package repositories

import "swiftstock/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	List() ([]models.Category, error)
	Search(prefix string) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id int64) error
}
