package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexKind enumerates the value shapes found in the loosely-typed jsonb
// columns (caracteristicas, especificaciones).
type FlexKind int

const (
	FlexString FlexKind = iota
	FlexList
	FlexObject
	FlexOther // numbers, booleans, null: kept as raw JSON text
)

// FlexValue is one value of a FlexMap: a string, a list of strings, a nested
// object, or any other scalar preserved as its JSON text.
type FlexValue struct {
	Kind FlexKind
	Str  string
	List []string
	Raw  json.RawMessage
}

// UnmarshalJSON decodes a single jsonb value into the tagged union.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("flex value: empty input")
	}
	switch trimmed[0] {
	case '"':
		v.Kind = FlexString
		return json.Unmarshal(trimmed, &v.Str)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return err
		}
		v.Kind = FlexList
		v.List = make([]string, 0, len(elems))
		for _, e := range elems {
			var s string
			if err := json.Unmarshal(e, &s); err != nil {
				// Non-string element: keep its JSON text.
				s = string(bytes.TrimSpace(e))
			}
			v.List = append(v.List, s)
		}
		return nil
	case '{':
		v.Kind = FlexObject
		return compactInto(&v.Raw, trimmed)
	default:
		v.Kind = FlexOther
		return compactInto(&v.Raw, trimmed)
	}
}

// MarshalJSON re-encodes the value in the shape it was decoded from.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FlexString:
		return json.Marshal(v.Str)
	case FlexList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	default:
		if len(v.Raw) == 0 {
			return []byte("null"), nil
		}
		return v.Raw, nil
	}
}

// Text renders the value as a single display string: strings verbatim,
// lists comma-joined, everything else as compact JSON.
func (v FlexValue) Text() string {
	switch v.Kind {
	case FlexString:
		return v.Str
	case FlexList:
		return strings.Join(v.List, ", ")
	default:
		return strings.Trim(string(v.Raw), `"`)
	}
}

// FlexPair is one key/value entry of a FlexMap.
type FlexPair struct {
	Key   string
	Value FlexValue
}

// FlexMap is a JSON object whose entries keep their document order. The
// feature and specification strings derived from these columns must follow
// input iteration order, which a plain Go map cannot guarantee, so the
// object is decoded token by token into an ordered pair slice.
type FlexMap []FlexPair

// UnmarshalJSON decodes a JSON object preserving key order. A JSON null
// decodes to a nil map.
func (m *FlexMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("flex map: expected object, got %v", tok)
	}
	var pairs []FlexPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("flex map: non-string key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v FlexValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("flex map: key %q: %w", key, err)
		}
		pairs = append(pairs, FlexPair{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = pairs
	return nil
}

// MarshalJSON encodes the map back to a JSON object in entry order.
func (m FlexMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := p.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Scan implements sql.Scanner so sqlx can read jsonb columns directly.
func (m *FlexMap) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return m.UnmarshalJSON(s)
	case string:
		return m.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("flex map: cannot scan %T", src)
	}
}

// Value implements driver.Valuer for writes and cache round-trips.
func (m FlexMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// compactInto stores a compacted copy of raw JSON into dst.
func compactInto(dst *json.RawMessage, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return err
	}
	*dst = json.RawMessage(buf.Bytes())
	return nil
}
