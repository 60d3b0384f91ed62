package normalize

import (
	"encoding/json"
	"fmt"
	"io"
)

// FromExport builds a Set from an Instagram data-export JSON document
// (followers_1.json, following.json or similar).
//
// The export schema varies between export versions, so instead of binding to
// a fixed struct the document is walked recursively: every string "value"
// field is taken as a handle, and every string "href" field contributes its
// trailing path segment. Records missing both fields are skipped rather than
// failing the batch; unknown and extra fields are ignored.
func FromExport(r io.Reader) (Set, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode export JSON: %w", err)
	}

	set := NewSet()
	walkExport(doc, set)
	return set, nil
}

func walkExport(node any, set Set) {
	switch v := node.(type) {
	case map[string]any:
		if value, ok := v["value"].(string); ok {
			set.Add(value)
		}
		if href, ok := v["href"].(string); ok {
			set.Add(href)
		}
		for _, child := range v {
			walkExport(child, set)
		}
	case []any:
		for _, child := range v {
			walkExport(child, set)
		}
	}
}
