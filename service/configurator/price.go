package configurator

import "errors"

// ErrNoPrice is returned when a configuration cannot be priced at all: no
// combination matches and the product has neither a base price nor any
// combination to fall back to. This is the one unrecoverable engine state;
// everything else degrades to a fallback.
var ErrNoPrice = errors.New("configurator: no price derivable for product")

// FindPriceByOptions resolves the unit price for a partial or complete
// selection. The Topping pseudo-category is dropped first (toppings are
// priced by the accountant), remaining values are normalized to their
// trailing ids, and the product's combinations are scanned in catalog order:
// the first combination carrying every selected category with the selected
// value wins. Extra categories in a combination that the user has not
// selected are ignored, which lets combinations vary only a subset of
// categories. Exactly one amount wins; matches are never summed.
func FindPriceByOptions(product Product, selections Selections) (float64, error) {
	effective := make(map[string]string, len(selections))
	for cat, val := range selections {
		if cat == KeyTopping || val == "" {
			continue
		}
		effective[cat] = ValueRef(val).TrailingID()
	}

	if len(effective) > 0 {
		for _, combo := range product.Combinations {
			if combinationMatches(combo, effective) {
				return combo.Amount, nil
			}
		}
	}

	return basePrice(product)
}

func combinationMatches(combo PriceCombination, effective map[string]string) bool {
	for cat, val := range effective {
		got, ok := combo.Selection[cat]
		if !ok || got != val {
			return false
		}
	}
	return true
}

// basePrice prefers the product's own numeric base price, then the first
// combination's amount. With neither, the configuration is unpriceable.
func basePrice(product Product) (float64, error) {
	if product.BasePrice != nil {
		return *product.BasePrice, nil
	}
	if len(product.Combinations) > 0 {
		return product.Combinations[0].Amount, nil
	}
	return 0, ErrNoPrice
}
