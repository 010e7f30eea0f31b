// Package models holds the records kept by swiftstock. Tables, columns and
// constraints are created by the DDL in internal/database, not by GORM.
package models

// Account represents a login account of the app.
type Account struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"-" validate:"required"` // Digest only, never clear text
}

// TableName specifies the table name for Account.
func (Account) TableName() string {
	return "accounts"
}

// AccountSummary is the public view of an account, without the password digest.
type AccountSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
