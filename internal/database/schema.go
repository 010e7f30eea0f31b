package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Table DDL keyed by dialect name. Every statement is create-if-absent so
// it can run any number of times. There is no migration versioning: a
// table that already exists is never altered.
var tableDDL = map[string]map[string]string{
	"accounts": {
		"sqlite": `CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		"postgres": `CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
	},
	"categories": {
		"sqlite": `CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT
		)`,
		"postgres": `CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT
		)`,
	},
	"suppliers": {
		"sqlite": `CREATE TABLE IF NOT EXISTS suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			age INTEGER,
			gender TEXT,
			address TEXT,
			contact TEXT
		)`,
		"postgres": `CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			age INTEGER,
			gender TEXT,
			address TEXT,
			contact TEXT
		)`,
	},
	"products": {
		"sqlite": `CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			price REAL,
			quantity INTEGER,
			image TEXT,
			expiry_date TEXT,
			category_id INTEGER,
			supplier_id INTEGER
		)`,
		"postgres": `CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION,
			quantity INTEGER,
			image TEXT,
			expiry_date TEXT,
			category_id BIGINT,
			supplier_id BIGINT
		)`,
	},
}

func ensureTable(db *gorm.DB, table string) error {
	dialect := db.Dialector.Name()
	ddl, ok := tableDDL[table][dialect]
	if !ok {
		return fmt.Errorf("no %s schema for dialect %s", table, dialect)
	}
	if err := db.Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to ensure %s table: %w", table, err)
	}
	return nil
}

// EnsureAccountsTable creates the accounts table if it does not exist.
func EnsureAccountsTable(db *gorm.DB) error {
	return ensureTable(db, "accounts")
}

// EnsureCategoriesTable creates the categories table if it does not exist.
func EnsureCategoriesTable(db *gorm.DB) error {
	return ensureTable(db, "categories")
}

// EnsureSuppliersTable creates the suppliers table if it does not exist.
func EnsureSuppliersTable(db *gorm.DB) error {
	return ensureTable(db, "suppliers")
}

// EnsureProductsTable creates the products table if it does not exist.
func EnsureProductsTable(db *gorm.DB) error {
	return ensureTable(db, "products")
}

// EnsureAll creates every table that does not exist yet.
func EnsureAll(db *gorm.DB) error {
	for _, ensure := range []func(*gorm.DB) error{
		EnsureAccountsTable,
		EnsureCategoriesTable,
		EnsureSuppliersTable,
		EnsureProductsTable,
	} {
		if err := ensure(db); err != nil {
			return err
		}
	}
	return nil
}

// DropAccountsTable removes the accounts table and every account in it.
func DropAccountsTable(db *gorm.DB) error {
	if err := db.Exec("DROP TABLE IF EXISTS accounts").Error; err != nil {
		return fmt.Errorf("failed to drop accounts table: %w", err)
	}
	return nil
}

// Schema binds the account table operations to one handle.
type Schema struct {
	db *gorm.DB
}

// NewSchema creates a Schema for db.
func NewSchema(db *gorm.DB) *Schema {
	return &Schema{db: db}
}

// EnsureAccountsTable creates the accounts table if it does not exist.
func (s *Schema) EnsureAccountsTable() error {
	return EnsureAccountsTable(s.db)
}

// DropAccountsTable removes the accounts table.
func (s *Schema) DropAccountsTable() error {
	return DropAccountsTable(s.db)
}
