package configurator

import (
	"fmt"
	"hash/fnv"
	"sort"

	"foodcourt.GO/core/cache"
)

// Validate checks a selection set against mandatory-category requirements
// and, when supplied, per-key allow-lists. Pure and idempotent: identical
// inputs always yield an identical verdict. Verdicts are memoized in the
// process cache under a structural hash of both inputs, so the caller is
// free to rebuild or mutate its selection maps between calls.
func Validate(selections Selections, req Requirements) ValidationState {
	key := []interface{}{"configurator:validate", structuralHash(selections, req)}
	if v, ok := cache.GetInstance().GetN(key...); ok {
		if state, isState := v.(ValidationState); isState {
			return state
		}
	}

	state := validate(selections, req)
	cache.GetInstance().SetN(key, state, 300, []string{"validator"})
	return state
}

func validate(selections Selections, req Requirements) ValidationState {
	state := ValidationState{MissingRequired: []string{}}
	for _, key := range req.MandatoryKeys {
		if selections[key] == "" {
			state.MissingRequired = append(state.MissingRequired, key)
		}
	}
	if req.AllowedCombinations != nil {
		keys := make([]string, 0, len(req.AllowedCombinations))
		for k := range req.AllowedCombinations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			val := selections[key]
			if val == "" {
				continue
			}
			if !contains(req.AllowedCombinations[key], ValueRef(val).TrailingID()) {
				state.InvalidCombinations = append(state.InvalidCombinations, key)
			}
		}
	}
	state.IsValid = len(state.MissingRequired) == 0 && len(state.InvalidCombinations) == 0
	return state
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// structuralHash folds both validator inputs into one stable key. Map
// iteration order is randomized, so entries are sorted before hashing.
func structuralHash(selections Selections, req Requirements) string {
	h := fnv.New64a()

	selKeys := make([]string, 0, len(selections))
	for k := range selections {
		selKeys = append(selKeys, k)
	}
	sort.Strings(selKeys)
	for _, k := range selKeys {
		fmt.Fprintf(h, "s|%s=%s;", k, selections[k])
	}

	mand := append([]string(nil), req.MandatoryKeys...)
	sort.Strings(mand)
	for _, k := range mand {
		fmt.Fprintf(h, "m|%s;", k)
	}

	allowKeys := make([]string, 0, len(req.AllowedCombinations))
	for k := range req.AllowedCombinations {
		allowKeys = append(allowKeys, k)
	}
	sort.Strings(allowKeys)
	for _, k := range allowKeys {
		vals := append([]string(nil), req.AllowedCombinations[k]...)
		sort.Strings(vals)
		fmt.Fprintf(h, "a|%s=%v;", k, vals)
	}

	return fmt.Sprintf("%x", h.Sum64())
}
