package configurator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// OptionPair is one normalized (categoryKey, value) entry from a raw
// per-price option list.
type OptionPair struct {
	CategoryKey string
	Value       OptionValue
}

// ValueRef is an option value reference as the surrounding catalog supplies
// it: either a bare value id or a composite "categoryId-groupId-valueId" key
// carrying positional context. Equality comparisons always go through
// TrailingID.
type ValueRef string

// TrailingID normalizes the ref to the bare value id (the trailing segment
// of a composite key).
func (r ValueRef) TrailingID() string {
	s := string(r)
	if i := strings.LastIndex(s, "-"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// numberToStringHook converts numeric ids from JSON payloads into strings so
// the same catalog feed can carry ids as numbers or strings.
func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

var optionValueDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
)

// aliasKeys maps the key spellings seen across catalog feeds onto the
// canonical mapstructure tags of OptionValue.
var aliasKeys = map[string]string{
	"value_id": "id",
	"valueid":  "id",
	"label":    "name",
	"groupid":  "group_id",
}

func canonicalizeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		lk := strings.ToLower(k)
		if alias, ok := aliasKeys[lk]; ok {
			lk = alias
		}
		out[lk] = v
	}
	return out
}

// decodeOptionValue turns one raw value (string id or map shape) into an
// OptionValue. Returns false for shapes it cannot read.
func decodeOptionValue(raw interface{}) (OptionValue, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return OptionValue{}, false
		}
		return OptionValue{ID: ValueRef(v).TrailingID(), Name: v}, true
	case float64, int, int64:
		s := fmt.Sprint(v)
		return OptionValue{ID: s, Name: s}, true
	case map[string]interface{}:
		var ov OptionValue
		cfg := &mapstructure.DecoderConfig{
			DecodeHook:       optionValueDecodeHook,
			Result:           &ov,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
		}
		dec, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return OptionValue{}, false
		}
		if err := dec.Decode(canonicalizeKeys(v)); err != nil || ov.ID == "" {
			return OptionValue{}, false
		}
		ov.ID = ValueRef(ov.ID).TrailingID()
		if ov.Name == "" {
			ov.Name = ov.ID
		}
		return ov, true
	}
	return OptionValue{}, false
}

// NormalizeOptionList converts a raw per-price option list into canonical
// (categoryKey, value) pairs. Two catalog shapes are accepted: an
// object-keyed map (categoryKey -> value or values) and an array of pair
// objects carrying their own key field. Absent or malformed shapes yield an
// empty list; this never errors.
func NormalizeOptionList(raw interface{}) []OptionPair {
	var pairs []OptionPair
	switch shape := raw.(type) {
	case map[string]interface{}:
		for key, val := range shape {
			if vs, ok := val.([]interface{}); ok {
				for _, item := range vs {
					if ov, ok := decodeOptionValue(item); ok {
						pairs = append(pairs, OptionPair{CategoryKey: key, Value: ov})
					}
				}
				continue
			}
			if ov, ok := decodeOptionValue(val); ok {
				pairs = append(pairs, OptionPair{CategoryKey: key, Value: ov})
			}
		}
	case []interface{}:
		for _, item := range shape {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			cm := canonicalizeKeys(m)
			key := pairCategoryKey(cm)
			if key == "" {
				continue
			}
			val, hasVal := cm["value"]
			if !hasVal {
				// pair object may inline the value fields next to the key
				val = cm
			}
			if ov, ok := decodeOptionValue(val); ok {
				pairs = append(pairs, OptionPair{CategoryKey: key, Value: ov})
			}
		}
	}
	return pairs
}

func pairCategoryKey(m map[string]interface{}) string {
	for _, field := range []string{"key", "category", "category_key"} {
		if v, ok := m[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// parsePrice reads a price amount from the shapes catalog feeds use: plain
// numbers, or strings decorated with a currency symbol and either decimal
// separator. Shared by the price resolver and the topping accountant.
func parsePrice(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		var b strings.Builder
		for _, r := range s {
			if (r >= '0' && r <= '9') || r == '.' || r == ',' {
				b.WriteRune(r)
			}
		}
		s = b.String()
		if s == "" {
			return 0, false
		}
		if !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// round2 rounds to the currency's minor unit.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
