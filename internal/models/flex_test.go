package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexMapPreservesDocumentOrder(t *testing.T) {
	input := `{"b":"first","a":["x","y"],"c":{"k":"v"},"d":5}`

	var m FlexMap
	require.NoError(t, json.Unmarshal([]byte(input), &m))
	require.Len(t, m, 4)

	assert.Equal(t, "b", m[0].Key)
	assert.Equal(t, "a", m[1].Key)
	assert.Equal(t, "c", m[2].Key)
	assert.Equal(t, "d", m[3].Key)

	assert.Equal(t, FlexString, m[0].Value.Kind)
	assert.Equal(t, "first", m[0].Value.Str)
	assert.Equal(t, FlexList, m[1].Value.Kind)
	assert.Equal(t, []string{"x", "y"}, m[1].Value.List)
	assert.Equal(t, FlexObject, m[2].Value.Kind)
	assert.JSONEq(t, `{"k":"v"}`, string(m[2].Value.Raw))
	assert.Equal(t, FlexOther, m[3].Value.Kind)
	assert.Equal(t, "5", string(m[3].Value.Raw))
}

func TestFlexMapRoundTrip(t *testing.T) {
	input := `{"z":"last?","m":["1","2"],"a":{"nested":"yes"}}`

	var m FlexMap
	require.NoError(t, json.Unmarshal([]byte(input), &m))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last?","m":["1","2"],"a":{"nested":"yes"}}`, string(out))
}

func TestFlexMapNullAndEmpty(t *testing.T) {
	var m FlexMap
	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Nil(t, m)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &m))
	assert.Empty(t, m)
}

func TestFlexMapRejectsNonObject(t *testing.T) {
	var m FlexMap
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &m))
}

func TestFlexMapScan(t *testing.T) {
	var m FlexMap
	require.NoError(t, m.Scan([]byte(`{"k":"v"}`)))
	require.Len(t, m, 1)
	assert.Equal(t, "k", m[0].Key)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(42))
}

func TestFlexValueText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"verbatim"`, "verbatim"},
		{"list", `["a","b","c"]`, "a, b, c"},
		{"object", `{"k":"v"}`, `{"k":"v"}`},
		{"number", `42`, "42"},
		{"bool", `true`, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.want, v.Text())
		})
	}
}

func TestFlexValueListNonStringElements(t *testing.T) {
	var v FlexValue
	require.NoError(t, json.Unmarshal([]byte(`["ok",7]`), &v))
	assert.Equal(t, []string{"ok", "7"}, v.List)
}
