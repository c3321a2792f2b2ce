package opt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Key string `json:"key"`
}

func TestNone(t *testing.T) {
	assert.False(t, None[string]().IsDefined())
	assert.Equal(t, 0, None[int]().Value())
	assert.Equal(t, entry{}, None[entry]().Value())
	assert.Equal(t, "[none]", None[int]().String())
}

func TestSome(t *testing.T) {
	assert.True(t, Some("").IsDefined())
	assert.Equal(t, "x", Some("x").Value())
	assert.Equal(t, "3", Some(3).String())
}

func TestFromOK(t *testing.T) {
	m := map[string]int{"a": 1}
	assert.Equal(t, Some(1), FromOK(m["a"], true))
	v, ok := m["b"]
	assert.Equal(t, None[int](), FromOK(v, ok))
}

func TestGetAndOrElse(t *testing.T) {
	v, ok := Some(4).Get()
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = None[int]().Get()
	assert.False(t, ok)

	assert.Equal(t, 3, None[int]().OrElse(3))
	assert.Equal(t, 4, Some(4).OrElse(3))
}

func TestMarshalUnmarshal(t *testing.T) {
	testMarshalUnmarshal(t, None[int](), "null")
	testMarshalUnmarshal(t, Some("v"), `"v"`)
	testMarshalUnmarshal(t, Some(entry{Key: "k"}), `{"key": "k"}`)

	var e Maybe[entry]
	assert.Error(t, e.UnmarshalJSON([]byte(`malformed json`)))
	assert.Error(t, e.UnmarshalJSON([]byte(`{"key": true}`)))
}

func testMarshalUnmarshal[V any](t *testing.T, expected Maybe[V], expectedJSON string) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	assert.JSONEq(t, expectedJSON, string(data))

	var actual Maybe[V]
	require.NoError(t, json.Unmarshal([]byte(expectedJSON), &actual))
	assert.Equal(t, expected, actual)
}
