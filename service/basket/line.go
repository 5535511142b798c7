package basket

import (
	"foodcourt.GO/service/configurator"
)

// OptionRef is one configured option as recorded on a basket line. ValueRef
// may be a composite "categoryId-groupId-valueId" key when the catalog needs
// positional context; equality always goes through TrailingID. Surcharge is
// any per-unit amount the option adds on top of the line's unit price.
type OptionRef struct {
	CategoryKey string                `json:"category_key"`
	ValueRef    configurator.ValueRef `json:"value_ref"`
	Label       string                `json:"label"`
	Quantity    int                   `json:"quantity"`
	Surcharge   float64               `json:"surcharge,omitempty"`
}

// ToppingRef is one topping as recorded on a basket line. Quantity is the
// requested total portion count; a topping below its included baseline is
// recorded as a "No X" credit line with no monetary effect.
type ToppingRef struct {
	ValueRef  configurator.ValueRef `json:"value_ref"`
	Label     string                `json:"label"`
	Quantity  int                   `json:"quantity"`
	Surcharge float64               `json:"surcharge,omitempty"`
}

// Line is one basket entry: a product configuration and its quantity.
// Lifecycle: created on confirm, quantity-mutated on merge or edit, removed
// when quantity reaches zero or the basket is cleared.
type Line struct {
	LineID    string       `json:"line_id"`
	ProductID string       `json:"product_id"`
	UnitPrice float64      `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Options   []OptionRef  `json:"options"`
	Toppings  []ToppingRef `json:"toppings"`
	Subtotal  float64      `json:"subtotal"`
}

// ToppingRefsFromCharges formats accountant output for the order line.
// Toppings under their included baseline become "No X" entries; these are
// informational for the order payload and carry no surcharge.
func ToppingRefsFromCharges(charges []configurator.ToppingCharge) []ToppingRef {
	refs := make([]ToppingRef, 0, len(charges))
	for _, c := range charges {
		label := c.Name
		if c.Removed > 0 {
			label = "No " + c.Name
		}
		refs = append(refs, ToppingRef{
			ValueRef: configurator.ValueRef(c.ID),
			Label:    label,
			Quantity: c.Portions,
		})
	}
	return refs
}

// optionEntry is one element of a line's identity multiset.
type optionEntry struct {
	key string
	val string
	qty int // portion count for toppings, zero for plain options
}

// identityEntries builds the option multiset used for line matching:
// (categoryKey, normalized value id) per option, (normalized id, portions)
// per topping. Toppings compare on both identity and portion count; options
// on identity only.
func identityEntries(options []OptionRef, toppings []ToppingRef) []optionEntry {
	entries := make([]optionEntry, 0, len(options)+len(toppings))
	for _, o := range options {
		entries = append(entries, optionEntry{key: o.CategoryKey, val: o.ValueRef.TrailingID()})
	}
	for _, t := range toppings {
		entries = append(entries, optionEntry{key: "topping", val: t.ValueRef.TrailingID(), qty: t.Quantity})
	}
	return entries
}

// sameConfiguration reports order-independent multiset equality with no
// partial-overlap credit.
func sameConfiguration(a, b []optionEntry) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[optionEntry]int, len(a))
	for _, e := range a {
		counts[e]++
	}
	for _, e := range b {
		counts[e]--
		if counts[e] < 0 {
			return false
		}
	}
	return true
}

// surchargeSum is the per-unit option surcharge total used for subtotals.
func surchargeSum(options []OptionRef, toppings []ToppingRef) float64 {
	var sum float64
	for _, o := range options {
		sum += o.Surcharge
	}
	for _, t := range toppings {
		sum += t.Surcharge
	}
	return sum
}
