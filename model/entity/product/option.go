package product

import "gorm.io/datatypes"

// OptionGroup represents storefront_product_option_group table. Position
// keeps the group order stable so selections stay index-addressable.
type OptionGroup struct {
	GroupID  uint   `gorm:"column:group_id;primaryKey;autoIncrement" json:"group_id,omitempty"`
	EntityID uint   `gorm:"column:entity_id;index;not null" json:"entity_id"`
	Name     string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Position int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (OptionGroup) TableName() string {
	return "storefront_product_option_group"
}

// OptionValue represents storefront_product_option_value table. A null
// additional_cost marks a bare scalar variant; structured variants store a
// currency-to-amount map.
type OptionValue struct {
	ValueID        uint                                  `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id,omitempty"`
	GroupID        uint                                  `gorm:"column:group_id;index;not null" json:"group_id"`
	Value          string                                `gorm:"column:value;type:varchar(255);not null" json:"value"`
	Position       int                                   `gorm:"column:position;not null;default:0" json:"position"`
	AdditionalCost datatypes.JSONType[map[string]float64] `gorm:"column:additional_cost" json:"additional_cost,omitempty"`
}

func (OptionValue) TableName() string {
	return "storefront_product_option_value"
}
