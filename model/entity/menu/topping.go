package menu

import "gorm.io/datatypes"

// Topping represents the menu_topping table. Code is the catalog's external
// topping id; GroupID links toppings to the menu items that offer them.
// PriceTiers holds the raw size-keyed tier list as JSON
// ([{"amount":1.5,"options":{"Size":"lg"}}, ...]).
type Topping struct {
	ToppingID        uint           `gorm:"column:topping_id;primaryKey;autoIncrement" json:"topping_id,omitempty"`
	Code             string         `gorm:"column:code;size:64;uniqueIndex;not null" json:"code"`
	GroupID          string         `gorm:"column:group_id;size:64;index;not null" json:"group_id"`
	Name             string         `gorm:"column:name;size:255;not null" json:"name"`
	IncludedPortions int            `gorm:"column:included_portions;not null;default:0" json:"included_portions"`
	FlatPrice        *float64       `gorm:"column:flat_price;type:decimal(12,4)" json:"flat_price,omitempty"`
	PriceTiers       datatypes.JSON `gorm:"column:price_tiers" json:"price_tiers,omitempty"`
}

func (Topping) TableName() string {
	return "menu_topping"
}
