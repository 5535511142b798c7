package configurator

import "sort"

// Session holds everything derived from the catalog for one product-open
// event: option groups, the compatibility graph, the mandatory key set and
// the topping definitions. It is built once from freshly fetched catalog
// data and discarded when the configuration view closes; every method is a
// pure read over the derived structures.
type Session struct {
	Product  Product
	Groups   []OptionGroup
	Graph    Graph
	Toppings map[string]ToppingDefinition

	mandatory map[string]struct{}
}

// NewSession derives a configuration session from raw catalog combinations
// and topping definitions.
func NewSession(product Product, raws []RawCombination, toppings []ToppingDefinition) *Session {
	product.Combinations = ParseCombinations(raws)
	graph, mandatory := BuildGraph(product.Combinations)

	defs := make(map[string]ToppingDefinition, len(toppings))
	for _, def := range toppings {
		defs[def.ID] = def
	}

	return &Session{
		Product:   product,
		Groups:    GroupOptions(raws),
		Graph:     graph,
		Toppings:  defs,
		mandatory: mandatory,
	}
}

// MandatoryKeys returns the mandatory category keys in stable order.
func (s *Session) MandatoryKeys() []string {
	keys := make([]string, 0, len(s.mandatory))
	for k := range s.mandatory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IncludedPortions returns how many portions of a topping come free with
// this product. A per-product override beats the topping's own default.
func (s *Session) IncludedPortions(toppingID string) int {
	if n, ok := s.Product.ToppingIncludes[toppingID]; ok {
		return n
	}
	if def, ok := s.Toppings[toppingID]; ok {
		return def.IncludedPortions
	}
	return 0
}

// OptionsFor returns the full, unfiltered value list of one category.
func (s *Session) OptionsFor(categoryKey string) []OptionValue {
	for _, g := range s.Groups {
		if g.Key == categoryKey {
			return g.Options
		}
	}
	return nil
}

// Filtered returns every group with its options narrowed against the
// current selections, skipping the given keys.
func (s *Session) Filtered(selections Selections, skipKeys ...string) []OptionGroup {
	return FilterGroups(s.Groups, selections, s.Graph, skipKeys)
}

// CompatibleFor narrows one category's options against the current
// selections.
func (s *Session) CompatibleFor(categoryKey string, selections Selections) []OptionValue {
	return CompatibleOptions(categoryKey, selections, s.Graph, s.OptionsFor(categoryKey))
}

// Validate reports whether the current selection satisfies every mandatory
// category.
func (s *Session) Validate(selections Selections) ValidationState {
	return Validate(selections, Requirements{MandatoryKeys: s.MandatoryKeys()})
}

// Quote prices the current configuration: the resolved combination price
// (options folded in), plus the topping charges. The only error is
// ErrNoPrice.
func (s *Session) Quote(selections Selections, toppings []ToppingSelection) (PriceCalculationResult, []ToppingCharge, error) {
	base, err := FindPriceByOptions(s.Product, selections)
	if err != nil {
		return PriceCalculationResult{}, nil, err
	}

	charges, toppingsPrice := AccountToppings(s.Toppings, toppings, selections[KeySize], s.Product.ToppingIncludes)

	res := PriceCalculationResult{
		BasePrice:     round2(base),
		OptionsPrice:  0,
		ToppingsPrice: toppingsPrice,
	}
	res.Total = round2(res.BasePrice + res.OptionsPrice + res.ToppingsPrice)
	return res, charges, nil
}
