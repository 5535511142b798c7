package models

// MenuItem is the GraphQL view of a configurable catalog item.
type MenuItem struct {
	SKU       string
	Name      string
	BasePrice *float64
	Groups    []*OptionGroup
	Mandatory []string
	Toppings  []*Topping
}

type OptionGroup struct {
	Key        string
	IsRequired bool
	Options    []*OptionValue
}

type OptionValue struct {
	ID      string
	Name    string
	GroupID *string
}

type Topping struct {
	ID               string
	Name             string
	IncludedPortions int32
}

// Quote is a priced configuration.
type Quote struct {
	SKU           string
	BasePrice     float64
	OptionsPrice  float64
	ToppingsPrice float64
	Total         float64
	Charges       []*ToppingCharge
}

type ToppingCharge struct {
	ID         string
	Name       string
	Portions   int32
	Included   int32
	Chargeable int32
	Removed    int32
	UnitPrice  float64
	Amount     float64
}
