package configurator

// Graph is the pairwise compatibility map derived from all priced
// combinations: categoryKey -> valueID -> otherCategoryKey -> set of
// co-occurring value ids. Symmetric by construction. This is a pairwise
// approximation, not an n-ary constraint store: filtering intersects
// pairwise-compatible sets, which can admit value triples that never occur
// together in a single combination.
type Graph map[string]map[string]map[string]map[string]struct{}

func (g Graph) add(cat, val, otherCat, otherVal string) {
	byVal, ok := g[cat]
	if !ok {
		byVal = make(map[string]map[string]map[string]struct{})
		g[cat] = byVal
	}
	byCat, ok := byVal[val]
	if !ok {
		byCat = make(map[string]map[string]struct{})
		byVal[val] = byCat
	}
	set, ok := byCat[otherCat]
	if !ok {
		set = make(map[string]struct{})
		byCat[otherCat] = set
	}
	set[otherVal] = struct{}{}
}

// compatibleSet returns the values of wantCat that co-occur with (cat, val),
// or nil when the graph has no entry for that pair.
func (g Graph) compatibleSet(cat, val, wantCat string) map[string]struct{} {
	if byVal, ok := g[cat]; ok {
		if byCat, ok := byVal[val]; ok {
			return byCat[wantCat]
		}
	}
	return nil
}

// BuildGraph scans every combination and records both directions of every
// distinct category pair inside its selection set. It also accumulates the
// mandatory category keys. O(Σ k²) over combinations with k categories each;
// k is small. Rebuilt from scratch on every product change, never updated
// incrementally.
func BuildGraph(combos []PriceCombination) (Graph, map[string]struct{}) {
	graph := make(Graph)
	mandatory := make(map[string]struct{})
	for _, combo := range combos {
		if combo.IsMandatory {
			for cat := range combo.Selection {
				mandatory[cat] = struct{}{}
			}
		}
		for catX, valA := range combo.Selection {
			for catY, valB := range combo.Selection {
				if catX == catY {
					continue
				}
				graph.add(catX, valA, catY, valB)
			}
		}
	}
	return graph, mandatory
}

// CompatibleOptions narrows a category's offered values to those still
// reachable given the current partial selection. Permissive defaults keep
// the UI from deadlocking on under-specified catalogs: an empty graph, an
// empty selection map, or a category the graph knows nothing about all
// return allOptions unfiltered. Otherwise the result is the intersection of
// the compatible-value sets contributed by every other selected category.
func CompatibleOptions(categoryKey string, selections Selections, graph Graph, allOptions []OptionValue) []OptionValue {
	if len(graph) == 0 || len(selections) == 0 {
		return allOptions
	}
	if _, ok := graph[categoryKey]; !ok {
		return allOptions
	}

	var allowed map[string]struct{}
	seeded := false
	for otherCat, val := range selections {
		if otherCat == categoryKey || val == "" {
			continue
		}
		set := graph.compatibleSet(otherCat, ValueRef(val).TrailingID(), categoryKey)
		if set == nil {
			continue
		}
		if !seeded {
			allowed = make(map[string]struct{}, len(set))
			for id := range set {
				allowed[id] = struct{}{}
			}
			seeded = true
			continue
		}
		// narrowing only: intersect with the new set
		for id := range allowed {
			if _, ok := set[id]; !ok {
				delete(allowed, id)
			}
		}
	}
	if !seeded {
		return allOptions
	}

	filtered := make([]OptionValue, 0, len(allOptions))
	for _, opt := range allOptions {
		if _, ok := allowed[opt.ID]; ok {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// FilterGroups applies CompatibleOptions per group, excluding categories
// listed in skipKeys (their values must always be shown in full, e.g. a
// "None" sentinel group).
func FilterGroups(groups []OptionGroup, selections Selections, graph Graph, skipKeys []string) []OptionGroup {
	skip := make(map[string]bool, len(skipKeys))
	for _, k := range skipKeys {
		skip[k] = true
	}
	out := make([]OptionGroup, 0, len(groups))
	for _, g := range groups {
		if !skip[g.Key] {
			g.Options = CompatibleOptions(g.Key, selections, graph, g.Options)
		}
		out = append(out, g)
	}
	return out
}
