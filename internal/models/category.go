package models

// Category groups products.
type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// TableName specifies the table name for Category.
func (Category) TableName() string {
	return "categories"
}
