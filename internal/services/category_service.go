package services

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
	notifier
}

// NewCategoryService creates a new CategoryService. publisher may be nil.
func NewCategoryService(repo repositories.CategoryRepository, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		repo:     repo,
		notifier: notifier{publisher: publisher},
	}
}

// Create adds a new category. Field validation is the caller's job.
func (s *CategoryService) Create(category *models.Category) models.Result {
	if err := s.repo.Create(category); err != nil {
		log.Printf("Error adding category: %v", err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	s.notify("category", "created", category.ID, category.Name)
	return models.Result{Success: true, Message: "Category added successfully!"}
}

// List retrieves all categories.
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.repo.List()
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		return nil, err
	}
	return categories, nil
}

// Search retrieves the categories whose name starts with query.
func (s *CategoryService) Search(query string) ([]models.Category, error) {
	categories, err := s.repo.Search(query)
	if err != nil {
		log.Printf("Error searching categories: %v", err)
		return nil, err
	}
	return categories, nil
}

// Update overwrites the category with the same ID and reports success.
func (s *CategoryService) Update(category *models.Category) bool {
	if err := s.repo.Update(category); err != nil {
		log.Printf("Error updating category: %v", err)
		return false
	}
	s.notify("category", "updated", category.ID, category.Name)
	return true
}

// Delete removes the category and reports success. Products keep their
// reference to it.
func (s *CategoryService) Delete(id int64) bool {
	if err := s.repo.Delete(id); err != nil {
		log.Printf("Error deleting category: %v", err)
		return false
	}
	s.notify("category", "deleted", id, "")
	return true
}
