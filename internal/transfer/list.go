package transfer

import (
	"encoding/json"

	"github.com/maheshrc27/approvals-api/internal/models"
)

// Keys under which the bridge nests entity arrays.
var listKeys = []string{"ideias", "publicacoes", "publications", "rows", "items", "list"}

const maxUnwrapDepth = 8

func (n *Normalizer) IdeaList(raw any, fallback models.IdeaStatus) []models.Idea {
	objects := unwrap(raw, 0)
	out := make([]models.Idea, 0, len(objects))
	for _, o := range objects {
		out = append(out, n.Idea(o, fallback))
	}
	return out
}

func (n *Normalizer) PublicationList(raw any, fallback models.PublicationStatus) []models.Publication {
	objects := unwrap(raw, 0)
	out := make([]models.Publication, 0, len(objects))
	for _, o := range objects {
		out = append(out, n.Publication(o, fallback))
	}
	return out
}

// unwrap flattens envelopes ({data: X}), keyed arrays ({ideias: [...]})
// and per-client batches inside arrays into a flat, order-preserving list
// of objects. Scalars and nulls yield nothing.
func unwrap(raw any, depth int) []map[string]any {
	if depth > maxUnwrapDepth {
		return nil
	}

	switch t := raw.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, el := range t {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if inner, wrapped := envelope(m); wrapped {
				out = append(out, inheritClient(m, unwrap(inner, depth+1))...)
				continue
			}
			out = append(out, m)
		}
		return out
	case []map[string]any:
		items := make([]any, len(t))
		for i := range t {
			items[i] = t[i]
		}
		return unwrap(items, depth)
	case map[string]any:
		if inner, wrapped := envelope(t); wrapped {
			return inheritClient(t, unwrap(inner, depth+1))
		}
		return []map[string]any{t}
	case json.RawMessage:
		return unwrapJSON(t, depth)
	case []byte:
		return unwrapJSON(t, depth)
	}
	return nil
}

func unwrapJSON(b []byte, depth int) []map[string]any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	return unwrap(v, depth+1)
}

// envelope reports the nested payload of a wrapper object. A "data" key
// only counts when it holds an object, an array or raw JSON, since in
// entity rows it is usually a date.
func envelope(m map[string]any) (any, bool) {
	if d, ok := m["data"]; ok && nestable(d) {
		return d, true
	}
	for _, k := range listKeys {
		if v, ok := m[k]; ok {
			if _, isList := v.([]any); isList {
				return v, true
			}
		}
	}
	return nil, false
}

func nestable(v any) bool {
	switch v.(type) {
	case map[string]any, []any, []map[string]any, json.RawMessage, []byte:
		return true
	}
	return false
}

// inheritClient copies a per-client batch's client reference onto the
// children that carry none. Children are copied, never mutated.
func inheritClient(parent map[string]any, children []map[string]any) []map[string]any {
	r := newRecord(parent)
	id, hasID := r.value(clientIDAliases...)
	name, hasName := r.value(clientNameAliases...)
	if !hasID && !hasName {
		return children
	}

	for i, child := range children {
		cr := newRecord(child)
		_, childID := cr.value(clientIDAliases...)
		_, childName := cr.value(clientNameAliases...)
		if (childID || !hasID) && (childName || !hasName) {
			continue
		}

		copied := make(map[string]any, len(child)+2)
		for k, v := range child {
			copied[k] = v
		}
		if hasID && !childID {
			copied[clientIDAliases[0]] = id
		}
		if hasName && !childName {
			copied[clientNameAliases[0]] = name
		}
		children[i] = copied
	}
	return children
}
