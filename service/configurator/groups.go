package configurator

// GroupOptions builds one OptionGroup per distinct category key observed
// across the given combinations' raw option lists. Values are deduplicated
// by id; a group is required when any combination contributing to it is
// flagged mandatory. No validation happens here — combinations whose option
// list cannot be read contribute nothing.
func GroupOptions(combos []RawCombination) []OptionGroup {
	var order []string
	byKey := make(map[string]*OptionGroup)
	seen := make(map[string]map[string]bool) // categoryKey -> valueID -> present

	for _, combo := range combos {
		for _, pair := range NormalizeOptionList(combo.Options) {
			g, ok := byKey[pair.CategoryKey]
			if !ok {
				g = &OptionGroup{Key: pair.CategoryKey}
				byKey[pair.CategoryKey] = g
				seen[pair.CategoryKey] = make(map[string]bool)
				order = append(order, pair.CategoryKey)
			}
			if combo.IsMandatory {
				g.IsRequired = true
			}
			if !seen[pair.CategoryKey][pair.Value.ID] {
				seen[pair.CategoryKey][pair.Value.ID] = true
				g.Options = append(g.Options, pair.Value)
			}
		}
	}

	groups := make([]OptionGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups
}

// RawCombination is one catalog price entry before normalization: the price
// amount in whatever shape the feed used, the mandatory flag, and the raw
// option list (object-keyed or array-of-pairs).
type RawCombination struct {
	Amount      interface{} `json:"amount"`
	IsMandatory bool        `json:"is_mandatory"`
	Options     interface{} `json:"options"`
}

// ParseCombinations converts raw catalog entries into PriceCombinations.
// Entries without a readable amount are dropped; entries with an unreadable
// option list become option-less combinations (they still price the bare
// product).
func ParseCombinations(raws []RawCombination) []PriceCombination {
	out := make([]PriceCombination, 0, len(raws))
	for _, raw := range raws {
		amount, ok := parsePrice(raw.Amount)
		if !ok {
			continue
		}
		sel := make(map[string]string)
		for _, pair := range NormalizeOptionList(raw.Options) {
			sel[pair.CategoryKey] = pair.Value.ID
		}
		out = append(out, PriceCombination{
			Amount:      amount,
			IsMandatory: raw.IsMandatory,
			Selection:   sel,
		})
	}
	return out
}
