package configurator

import "testing"

func TestNormalizeOptionList_ObjectKeyed(t *testing.T) {
	raw := map[string]interface{}{
		"Size":  map[string]interface{}{"id": "lg", "name": "Large", "group_id": "g1"},
		"Crust": "thin",
	}
	pairs := NormalizeOptionList(raw)
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}
	byKey := make(map[string]OptionValue)
	for _, p := range pairs {
		byKey[p.CategoryKey] = p.Value
	}
	if byKey["Size"].ID != "lg" || byKey["Size"].Name != "Large" || byKey["Size"].GroupID != "g1" {
		t.Errorf("Size = %+v", byKey["Size"])
	}
	if byKey["Crust"].ID != "thin" {
		t.Errorf("Crust.ID = %q, want thin", byKey["Crust"].ID)
	}
}

func TestNormalizeOptionList_ArrayOfPairs(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"key": "Size", "value": map[string]interface{}{"id": "sm", "label": "Small"}},
		map[string]interface{}{"category": "Crust", "value": "stuffed"},
	}
	pairs := NormalizeOptionList(raw)
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}
	if pairs[0].CategoryKey != "Size" || pairs[0].Value.ID != "sm" || pairs[0].Value.Name != "Small" {
		t.Errorf("pair[0] = %+v", pairs[0])
	}
	if pairs[1].CategoryKey != "Crust" || pairs[1].Value.ID != "stuffed" {
		t.Errorf("pair[1] = %+v", pairs[1])
	}
}

func TestNormalizeOptionList_NumericIDs(t *testing.T) {
	raw := map[string]interface{}{
		"Size": map[string]interface{}{"value_id": float64(42), "name": "Large"},
	}
	pairs := NormalizeOptionList(raw)
	if len(pairs) != 1 {
		t.Fatalf("pairs = %d, want 1", len(pairs))
	}
	if pairs[0].Value.ID != "42" {
		t.Errorf("ID = %q, want 42", pairs[0].Value.ID)
	}
}

func TestNormalizeOptionList_Malformed(t *testing.T) {
	for _, raw := range []interface{}{nil, "garbage", 12, []interface{}{"not-a-map"}} {
		if pairs := NormalizeOptionList(raw); len(pairs) != 0 {
			t.Errorf("NormalizeOptionList(%v) = %v, want empty", raw, pairs)
		}
	}
}

func TestGroupOptions_DedupAndRequired(t *testing.T) {
	combos := []RawCombination{
		{Amount: 5.0, IsMandatory: true, Options: map[string]interface{}{
			"Size": map[string]interface{}{"id": "sm", "name": "Small"},
		}},
		{Amount: 7.0, IsMandatory: true, Options: map[string]interface{}{
			"Size": map[string]interface{}{"id": "lg", "name": "Large"},
		}},
		{Amount: 7.5, Options: map[string]interface{}{
			"Size":  map[string]interface{}{"id": "lg", "name": "Large"},
			"Crust": map[string]interface{}{"id": "thin", "name": "Thin"},
		}},
	}
	groups := GroupOptions(combos)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	var size, crust *OptionGroup
	for i := range groups {
		switch groups[i].Key {
		case "Size":
			size = &groups[i]
		case "Crust":
			crust = &groups[i]
		}
	}
	if size == nil || crust == nil {
		t.Fatalf("missing group: %+v", groups)
	}
	if !size.IsRequired {
		t.Error("Size should be required")
	}
	if crust.IsRequired {
		t.Error("Crust should not be required")
	}
	if len(size.Options) != 2 {
		t.Errorf("Size options = %d, want 2 (lg deduplicated)", len(size.Options))
	}
}

func TestGroupOptions_MalformedYieldsEmpty(t *testing.T) {
	combos := []RawCombination{{Amount: 5.0, Options: "not an option list"}}
	if groups := GroupOptions(combos); len(groups) != 0 {
		t.Errorf("groups = %v, want empty", groups)
	}
}

func TestParseCombinations(t *testing.T) {
	raws := []RawCombination{
		{Amount: "£7.50", IsMandatory: true, Options: map[string]interface{}{"Size": "lg"}},
		{Amount: "bad", Options: map[string]interface{}{"Size": "sm"}},
		{Amount: 5},
	}
	combos := ParseCombinations(raws)
	if len(combos) != 2 {
		t.Fatalf("combos = %d, want 2 (unreadable amount dropped)", len(combos))
	}
	if combos[0].Amount != 7.5 || !combos[0].IsMandatory || combos[0].Selection["Size"] != "lg" {
		t.Errorf("combos[0] = %+v", combos[0])
	}
	if combos[1].Amount != 5 || len(combos[1].Selection) != 0 {
		t.Errorf("combos[1] = %+v", combos[1])
	}
}

func TestValueRef_TrailingID(t *testing.T) {
	cases := map[ValueRef]string{
		"cat1-g2-lg": "lg",
		"lg":         "lg",
		"":           "",
	}
	for ref, want := range cases {
		if got := ref.TrailingID(); got != want {
			t.Errorf("TrailingID(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{7.5, 7.5, true},
		{5, 5, true},
		{"£7.50", 7.5, true},
		{"7,50", 7.5, true},
		{"1,250.99", 1250.99, true},
		{"free", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parsePrice(%v) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
