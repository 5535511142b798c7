package configurator

// Category keys with special meaning in the catalog feed.
const (
	// KeyTopping is the pseudo-category carrying topping picks inside a
	// selection map. Toppings are priced by the accountant, never by the
	// combination resolver.
	KeyTopping = "Topping"
	// KeySize is the category whose selected value keys size-dependent
	// topping price tiers.
	KeySize = "Size"
)

// OptionValue is one selectable value of a category ("Large", "Stuffed").
// Identity is ID; values are immutable once derived from the catalog.
type OptionValue struct {
	ID      string `json:"id" mapstructure:"id"`
	Name    string `json:"name" mapstructure:"name"`
	GroupID string `json:"group_id" mapstructure:"group_id"`
}

// OptionGroup is a category of mutually exclusive values sharing a key.
// IsRequired is set when any priced combination contributing to the group is
// flagged mandatory.
type OptionGroup struct {
	Key       string        `json:"key"`
	IsRequired bool         `json:"is_required"`
	Options   []OptionValue `json:"options"`
}

// PriceCombination is one SKU-level price tied to a specific set of option
// values, one value per category. The catalog supplies these flat; they are
// never decomposed further.
type PriceCombination struct {
	Amount      float64           `json:"amount"`
	IsMandatory bool              `json:"is_mandatory"`
	Selection   map[string]string `json:"selection"` // categoryKey -> valueID
}

// Selections maps category key to the chosen value id. A category either has
// a chosen value or is absent/empty; there is no partially-invalid state.
type Selections map[string]string

// Requirements drives the selection validator.
type Requirements struct {
	MandatoryKeys       []string
	AllowedCombinations map[string][]string // optional per-key allow-lists
}

// ValidationState is the validator's verdict. Returned as data, never as an
// error, so the UI can render partial progress.
type ValidationState struct {
	IsValid             bool     `json:"is_valid"`
	MissingRequired     []string `json:"missing_required"`
	InvalidCombinations []string `json:"invalid_combinations,omitempty"`
}

// ToppingDefinition describes one topping as fetched from the catalog.
// IncludedPortions is the free baseline bundled with the product; portions
// beyond it are billed at the tier-resolved unit price. Tiers may be keyed by
// the product's selected size through their Selection map.
type ToppingDefinition struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	IncludedPortions int                `json:"included_portions"`
	FlatPrice        *float64           `json:"flat_price,omitempty"`
	PriceTiers       []PriceCombination `json:"price_tiers,omitempty"`
}

// ToppingSelection is the customer's desired total portion count for one
// topping (not the delta against the included baseline).
type ToppingSelection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Portions int    `json:"portions"`
}

// PriceCalculationResult is the engine's monetary output for one configured
// product. The resolved combination price already reflects the chosen
// options, so OptionsPrice stays zero and BasePrice carries the combination
// amount; Total = BasePrice + OptionsPrice + ToppingsPrice always.
type PriceCalculationResult struct {
	BasePrice     float64 `json:"base_price"`
	OptionsPrice  float64 `json:"options_price"`
	ToppingsPrice float64 `json:"toppings_price"`
	Total         float64 `json:"total"`
}

// Product is the configurator's view of one menu item: everything the engine
// needs, already fetched and parsed by the menu repository.
type Product struct {
	ID               string
	Name             string
	BasePrice        *float64
	Combinations     []PriceCombination
	ToppingIncludes  map[string]int // per-product includedPortions overrides, topping id -> count
}
