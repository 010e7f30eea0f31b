package models

// Product represents a product kept in stock.
// CategoryID and SupplierID are weak references: they may point to rows
// that no longer exist.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Image       string  `json:"image"`
	ExpiryDate  string  `json:"expiry_date" gorm:"column:expiry_date"`
	CategoryID  *int64  `json:"category_id" validate:"required"`
	SupplierID  *int64  `json:"supplier_id" validate:"required"`
}

// TableName specifies the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductDetail is a product enriched with the display names of the
// category and supplier it references. A nil name means the reference is
// unset or dangling.
type ProductDetail struct {
	Product
	CategoryName *string `json:"category_name,omitempty" gorm:"column:category_name"`
	SupplierName *string `json:"supplier_name,omitempty" gorm:"column:supplier_name"`
}
