// Package commerce models the loosely-typed product and store rows the
// backend returns. Rows pass through verbatim as open-ended maps; every
// typed read is an explicit coercion site that falls back to a default
// instead of failing, because the backend freely mixes numbers, numeric
// strings, and absent fields.
package commerce

import "strconv"

// Record is one backend row (a product, store, cart line, or address) kept
// verbatim. Unknown fields survive a snapshot round-trip untouched.
type Record map[string]any

// String coerces a field to a string. Numeric values are stringified;
// anything else reads as absent.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	}
	return "", false
}

// Number coerces a field to a float64, accepting JSON numbers and numeric
// strings.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		if val == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// DisplayName is the name shown in candidate lists and matched by the
// reference resolver: title for products (with product_name as the backend's
// alternate spelling), name for stores.
func (r Record) DisplayName() string {
	for _, key := range []string{"title", "product_name", "name"} {
		if name, ok := r.String(key); ok {
			return name
		}
	}
	return ""
}
