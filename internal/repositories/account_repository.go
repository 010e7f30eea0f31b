package repositories

import "swiftstock/internal/models"

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	Count() (int64, error)
	Create(account *models.Account) error
	GetByEmail(email string) (*models.Account, error)
	List() ([]models.AccountSummary, error)
	UpdateCredentials(currentEmail, newEmail, passwordHash string) error
}
