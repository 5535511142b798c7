package menu

import "gorm.io/datatypes"

// MenuItem represents the menu_item table: one configurable base product.
// ToppingIncludes holds the product-level includedPortions overrides as a
// JSON map of topping code to free portion count ("comes with N free"),
// separate from each topping's own catalog default.
type MenuItem struct {
	EntityID        uint           `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id,omitempty"`
	SKU             string         `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`
	Name            string         `gorm:"column:name;size:255;not null" json:"name"`
	BasePrice       *float64       `gorm:"column:base_price;type:decimal(12,4)" json:"base_price,omitempty"`
	ToppingGroupID  string         `gorm:"column:topping_group_id;size:64;index" json:"topping_group_id,omitempty"`
	ToppingIncludes datatypes.JSON `gorm:"column:topping_includes" json:"topping_includes,omitempty"`
}

func (MenuItem) TableName() string {
	return "menu_item"
}

// PriceVariant represents the menu_item_price_variant table: one priced
// option combination. Options carries the raw option list exactly as the
// catalog feed supplied it (object-keyed or array-of-pairs); the
// configurator normalizes it on load.
type PriceVariant struct {
	ValueID     uint           `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id,omitempty"`
	ItemID      uint           `gorm:"column:item_id;index;not null" json:"item_id"`
	Amount      float64        `gorm:"column:amount;type:decimal(12,4);not null;default:0" json:"amount"`
	IsMandatory bool           `gorm:"column:is_mandatory;not null;default:false" json:"is_mandatory"`
	Options     datatypes.JSON `gorm:"column:options" json:"options,omitempty"`
	Position    int            `gorm:"column:position;not null;default:0" json:"position"`
}

func (PriceVariant) TableName() string {
	return "menu_item_price_variant"
}
