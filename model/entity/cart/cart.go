package cart

import (
	"time"

	"gorm.io/datatypes"

	storecart "storefront.GO/cart"
)

// CartRecord represents storefront_cart table: one persisted cart snapshot
// per storefront session.
type CartRecord struct {
	CartID    uint                                     `gorm:"column:cart_id;primaryKey;autoIncrement" json:"cart_id,omitempty"`
	SessionID string                                   `gorm:"column:session_id;type:varchar(64);uniqueIndex;not null" json:"session_id"`
	Currency  string                                   `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Items     datatypes.JSONType[storecart.Collection] `gorm:"column:items" json:"items"`
	UpdatedAt time.Time                                `gorm:"column:updated_at" json:"updated_at"`
}

func (CartRecord) TableName() string {
	return "storefront_cart"
}
