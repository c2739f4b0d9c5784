package xcresult

import (
	"encoding/json"
	"fmt"

	"github.com/creachadair/mds/mapset"
)

// Survey returns the set of type names declared anywhere in the JSON
// document data, including supertype names. Its result is meant for
// [Family.Drift], to spot types a family is missing.
func Survey(data []byte) (mapset.Set[TypeName], error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("surveying type names: %w", err)
	}
	ret := mapset.New[TypeName]()
	surveyValue(doc, ret)
	return ret, nil
}

func surveyValue(v any, names mapset.Set[TypeName]) {
	switch x := v.(type) {
	case []any:
		for _, elem := range x {
			surveyValue(elem, names)
		}
	case map[string]any:
		if t, ok := x["_type"].(map[string]any); ok {
			surveyType(t, names)
		}
		for k, elem := range x {
			if k == "_type" {
				continue
			}
			surveyValue(elem, names)
		}
	}
}

// surveyType adds the names in the type descriptor t to names.
func surveyType(t map[string]any, names mapset.Set[TypeName]) {
	for t != nil {
		if n, ok := t["_name"].(string); ok && n != "" {
			names.Add(TypeName(n))
		}
		t, _ = t["_supertype"].(map[string]any)
	}
}
