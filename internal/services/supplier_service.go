package services

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/repositories"
)

// SupplierService handles business logic related to suppliers.
type SupplierService struct {
	repo repositories.SupplierRepository
	notifier
}

// NewSupplierService creates a new SupplierService. publisher may be nil.
func NewSupplierService(repo repositories.SupplierRepository, publisher EventPublisher) *SupplierService {
	return &SupplierService{
		repo:     repo,
		notifier: notifier{publisher: publisher},
	}
}

// Create adds a new supplier. A duplicate email yields an unsuccessful result
// carrying the store's message.
func (s *SupplierService) Create(supplier *models.Supplier) models.Result {
	if err := s.repo.Create(supplier); err != nil {
		log.Printf("Error adding supplier: %v", err)
		return models.Result{Success: false, Message: err.Error(), Err: err}
	}
	s.notify("supplier", "created", supplier.ID, supplier.Name)
	return models.Result{Success: true, Message: "Supplier added successfully!"}
}

// List retrieves all suppliers.
func (s *SupplierService) List() ([]models.Supplier, error) {
	suppliers, err := s.repo.List()
	if err != nil {
		log.Printf("Error fetching suppliers: %v", err)
		return nil, err
	}
	return suppliers, nil
}

// Search retrieves the suppliers whose name starts with query.
func (s *SupplierService) Search(query string) ([]models.Supplier, error) {
	suppliers, err := s.repo.Search(query)
	if err != nil {
		log.Printf("Error searching suppliers: %v", err)
		return nil, err
	}
	return suppliers, nil
}

// Update overwrites the supplier with the same ID and reports success.
func (s *SupplierService) Update(supplier *models.Supplier) bool {
	if err := s.repo.Update(supplier); err != nil {
		log.Printf("Error updating supplier: %v", err)
		return false
	}
	s.notify("supplier", "updated", supplier.ID, supplier.Name)
	return true
}

// Delete removes the supplier and reports success.
func (s *SupplierService) Delete(id int64) bool {
	if err := s.repo.Delete(id); err != nil {
		log.Printf("Error deleting supplier: %v", err)
		return false
	}
	s.notify("supplier", "deleted", id, "")
	return true
}
