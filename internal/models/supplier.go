package models

// Gender of a supplier contact. The zero value means unset.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Supplier represents a supplier of products.
type Supplier struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" validate:"required,max=100"`
	Email   *string `json:"email,omitempty" validate:"required,email"` // NULL never collides
	Age     int     `json:"age" validate:"required,gt=0,lt=150"`
	Gender  Gender  `json:"gender" validate:"required,oneof=Male Female Other"`
	Address string  `json:"address" validate:"required"`
	Contact string  `json:"contact" validate:"required"`
}

// TableName specifies the table name for Supplier.
func (Supplier) TableName() string {
	return "suppliers"
}
