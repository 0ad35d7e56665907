package transfer

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/maheshrc27/approvals-api/pkg/utils"
)

// record is a loosely-typed inbound object with alias-aware lookup.
type record struct {
	raw    map[string]any
	folded map[string]any
}

func newRecord(raw any) record {
	m, _ := asObject(raw)
	if m == nil {
		m = map[string]any{}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]any, len(m))
	for _, k := range keys {
		fk := utils.FoldKey(k)
		if _, taken := folded[fk]; !taken {
			folded[fk] = m[k]
		}
	}
	return record{raw: m, folded: folded}
}

// lookup returns the first present value among aliases. Exact keys are
// tried before folded ones so that an explicitly listed spelling always
// wins over an accidental collision.
func (r record) lookup(aliases []string, present func(any) bool) (any, bool) {
	for _, a := range aliases {
		if v, ok := r.raw[a]; ok && present(v) {
			return v, true
		}
	}
	for _, a := range aliases {
		if v, ok := r.folded[utils.FoldKey(a)]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

func (r record) value(aliases ...string) (any, bool) {
	return r.lookup(aliases, hasValue)
}

func hasValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	}
	return true
}

// asObject accepts decoded JSON objects, raw JSON bytes, JSON text and, as
// a last resort, anything that marshals to a JSON object (typed structs).
func asObject(raw any) (map[string]any, bool) {
	switch t := raw.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return t, true
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = v
		}
		return m, true
	case json.RawMessage:
		return decodeObject(t)
	case []byte:
		return decodeObject(t)
	case string, bool, float64, float32, int, int64, int32, json.Number:
		return nil, false
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	return decodeObject(b)
}

func decodeObject(b []byte) (map[string]any, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

// decodeJSONText parses s when it looks like a JSON array or object.
func decodeJSONText(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '[' && s[0] != '{') {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
