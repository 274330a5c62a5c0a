package product

import "gorm.io/datatypes"

// Product represents storefront_product table
type Product struct {
	EntityID   uint                        `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id,omitempty"`
	ProductID  string                      `gorm:"column:product_id;type:varchar(64);uniqueIndex;not null" json:"product_id"`
	Name       string                      `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Path       string                      `gorm:"column:path;type:varchar(255)" json:"path,omitempty"`
	ImagePath  string                      `gorm:"column:image_path;type:varchar(255)" json:"image_path,omitempty"`
	ShowInCart datatypes.JSONSlice[string] `gorm:"column:show_in_cart" json:"show_in_cart,omitempty"`
}

func (Product) TableName() string {
	return "storefront_product"
}
