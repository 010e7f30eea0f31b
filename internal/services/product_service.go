package services

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
	notifier
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:     repo,
		notifier: notifier{publisher: publisher},
	}
}

// Create adds a new product.
func (s *ProductService) Create(product *models.Product) models.Result {
	if err := s.repo.Create(product); err != nil {
		log.Printf("Error adding product: %v", err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	s.notify("product", "created", product.ID, product.Name)
	return models.Result{Success: true, Message: "Product added successfully!"}
}

// List retrieves all products with their category and supplier names.
func (s *ProductService) List() ([]models.ProductDetail, error) {
	products, err := s.repo.List()
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		return nil, err
	}
	return products, nil
}

// Search retrieves the products whose name starts with query.
func (s *ProductService) Search(query string) ([]models.ProductDetail, error) {
	products, err := s.repo.Search(query)
	if err != nil {
		log.Printf("Error searching products: %v", err)
		return nil, err
	}
	return products, nil
}

// Update overwrites the product with the same ID and reports success.
func (s *ProductService) Update(product *models.Product) bool {
	if err := s.repo.Update(product); err != nil {
		log.Printf("Error updating product: %v", err)
		return false
	}
	s.notify("product", "updated", product.ID, product.Name)
	return true
}

// Delete removes the product and reports success.
func (s *ProductService) Delete(id int64) bool {
	if err := s.repo.Delete(id); err != nil {
		log.Printf("Error deleting product: %v", err)
		return false
	}
	s.notify("product", "deleted", id, "")
	return true
}
