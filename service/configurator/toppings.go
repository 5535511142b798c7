package configurator

// ToppingCharge is the accountant's output for one requested topping.
// Chargeable counts portions beyond the included baseline; Removed counts
// portions under it. At most one of the two is positive. Removed portions
// are informational for the order line ("No X") and never credit money back.
type ToppingCharge struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Portions   int     `json:"portions"`
	Included   int     `json:"included"`
	Chargeable int     `json:"chargeable"`
	Removed    int     `json:"removed"`
	UnitPrice  float64 `json:"unit_price"`
	Amount     float64 `json:"amount"`
}

// AccountToppings computes the charge for every requested topping against
// the fetched definitions. A selection whose topping id is absent from defs
// contributes zero and is skipped entirely: catalog drift must not block
// checkout. sizeValueID is the product's selected size (empty when none);
// includes holds per-product includedPortions overrides keyed by topping id.
func AccountToppings(defs map[string]ToppingDefinition, sels []ToppingSelection, sizeValueID string, includes map[string]int) ([]ToppingCharge, float64) {
	charges := make([]ToppingCharge, 0, len(sels))
	var total float64
	for _, sel := range sels {
		def, ok := defs[sel.ID]
		if !ok {
			continue
		}

		included := def.IncludedPortions
		if includes != nil {
			if override, ok := includes[sel.ID]; ok {
				included = override
			}
		}

		unit := toppingUnitPrice(def, sizeValueID)

		charge := ToppingCharge{
			ID:        sel.ID,
			Name:      def.Name,
			Portions:  sel.Portions,
			Included:  included,
			UnitPrice: unit,
		}
		if sel.Portions > included {
			charge.Chargeable = sel.Portions - included
		} else if sel.Portions < included {
			charge.Removed = included - sel.Portions
		}
		charge.Amount = round2(unit * float64(charge.Chargeable))
		total += charge.Amount
		charges = append(charges, charge)
	}
	return charges, round2(total)
}

// toppingUnitPrice resolves one topping's unit price: the tier matching the
// selected size, else the first tier, else the topping's flat price, else
// zero.
func toppingUnitPrice(def ToppingDefinition, sizeValueID string) float64 {
	if sizeValueID != "" {
		sizeID := ValueRef(sizeValueID).TrailingID()
		for _, tier := range def.PriceTiers {
			if tier.Selection[KeySize] == sizeID {
				return tier.Amount
			}
		}
	}
	if len(def.PriceTiers) > 0 {
		return def.PriceTiers[0].Amount
	}
	if def.FlatPrice != nil {
		return *def.FlatPrice
	}
	return 0
}
