package repositories

import (
	"errors"
	"fmt"

	"swiftstock/internal/models"

	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Count returns the number of accounts.
func (r *GORMAccountRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, readError("count accounts", err)
	}
	return count, nil
}

// Create inserts a new account. account.Password must already be a digest.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return writeError("create account", err)
	}
	return nil
}

// GetByEmail retrieves an account by its email.
func (r *GORMAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).Take(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with email %s: %w", email, ErrNotFound)
		}
		return nil, readError("get account by email "+email, err)
	}
	return &account, nil
}

// List retrieves the ID and email of every account.
func (r *GORMAccountRepository) List() ([]models.AccountSummary, error) {
	accounts := []models.AccountSummary{}
	if err := r.db.Model(&models.Account{}).Select("id", "email").Order("id").Scan(&accounts).Error; err != nil {
		return nil, readError("list accounts", err)
	}
	return accounts, nil
}

// UpdateCredentials replaces the email and password digest of the account
// identified by currentEmail.
func (r *GORMAccountRepository) UpdateCredentials(currentEmail, newEmail, passwordHash string) error {
	err := r.db.Model(&models.Account{}).
		Where("email = ?", currentEmail).
		Updates(map[string]interface{}{"email": newEmail, "password": passwordHash}).Error
	if err != nil {
		return writeError("update account", err)
	}
	return nil
}
