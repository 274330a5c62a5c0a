package product

// Price represents storefront_product_price table: one base price row per
// product and currency.
type Price struct {
	PriceID  uint    `gorm:"column:price_id;primaryKey;autoIncrement" json:"price_id,omitempty"`
	EntityID uint    `gorm:"column:entity_id;index:idx_price_entity_currency,unique;not null" json:"entity_id"`
	Currency string  `gorm:"column:currency;type:varchar(8);index:idx_price_entity_currency,unique;not null" json:"currency"`
	Value    float64 `gorm:"column:value;type:decimal(20,6);not null;default:0" json:"value"`
}

func (Price) TableName() string {
	return "storefront_product_price"
}
