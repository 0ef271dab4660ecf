package filterexpr

import (
	"fmt"
	"strings"
)

func compileOrder(raw string, schema Schema) ([]OrderTerm, error) {
	resolve := func(t OrderTerm) (OrderTerm, error) {
		col, ok := schema.OrderKeys[t.Key]
		if !ok {
			return OrderTerm{}, fmt.Errorf("field %q cannot be used for ordering", t.Key)
		}
		t.Column = col
		return t, nil
	}

	var terms []OrderTerm
	seen := map[string]bool{}
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return nil, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}
		t := OrderTerm{Key: parts[0]}
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				t.Desc = true
			default:
				return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], t.Key)
			}
		}
		if seen[t.Key] {
			return nil, fmt.Errorf("duplicate order key %q", t.Key)
		}
		seen[t.Key] = true
		resolved, err := resolve(t)
		if err != nil {
			return nil, err
		}
		terms = append(terms, resolved)
	}

	if len(terms) == 0 {
		for _, t := range schema.DefaultOrder {
			resolved, err := resolve(t)
			if err != nil {
				return nil, fmt.Errorf("default order: %w", err)
			}
			terms = append(terms, resolved)
		}
		return terms, nil
	}

	// append the default tie-breaker so paging stays stable
	if n := len(schema.DefaultOrder); n > 0 {
		tie := schema.DefaultOrder[n-1]
		if !seen[tie.Key] {
			resolved, err := resolve(tie)
			if err != nil {
				return nil, fmt.Errorf("default order: %w", err)
			}
			terms = append(terms, resolved)
		}
	}
	return terms, nil
}
