package normalize

import (
	"testing"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	require.Equal(t, "X", Get(gabs.Wrap(map[string]any{}), "X", "a", "b"))
	require.Equal(t, 5, Get(gabs.Wrap(map[string]any{"a": map[string]any{"b": 5}}), nil, "a", "b"))
	require.Equal(t, "X", Get(gabs.Wrap(map[string]any{"a": 5}), "X", "a", "b"))
}

func TestLookupTreatsNullAsAbsent(t *testing.T) {
	c, err := Parse([]byte(`{"a":{"b":null},"c":null}`))
	require.NoError(t, err)

	require.False(t, Lookup(c, "a", "b").Present())
	require.False(t, Lookup(c, "c", "d").Present())
	require.True(t, Lookup(c, "a").Present())
}

func TestLookupDoesNotDescendIntoArrays(t *testing.T) {
	c, err := Parse([]byte(`{"items":[{"id":"1"},{"id":"2"}]}`))
	require.NoError(t, err)

	require.False(t, Lookup(c, "items", "id").Present())
	require.Len(t, Lookup(c, "items").Items(), 2)
}

func TestLookupOnNilContainer(t *testing.T) {
	require.False(t, Lookup(nil, "a").Present())
	require.Equal(t, int64(7), Lookup(nil, "a").Int(7))
}

func TestTypedGetters(t *testing.T) {
	c, err := Parse([]byte(`{
		"id": 3141592653589793238,
		"name": "zuck",
		"count": 12,
		"ratio": 1.5,
		"flag": true,
		"numeric_text": "42",
		"ts": 1700000000,
		"created_at": "2024-01-02T03:04:05.000Z",
		"metrics": {"like_count": 3, "nested": [1, 2]}
	}`))
	require.NoError(t, err)

	require.Equal(t, "3141592653589793238", Lookup(c, "id").String(""))
	require.Equal(t, "zuck", Lookup(c, "name").String(""))
	require.Equal(t, int64(12), Lookup(c, "count").Int(0))
	require.Equal(t, int64(1), Lookup(c, "ratio").Int(0))
	require.Equal(t, int64(42), Lookup(c, "numeric_text").Int(0))
	require.True(t, Lookup(c, "flag").Bool(false))
	require.Nil(t, Lookup(c, "name").BoolPtr())
	require.Nil(t, Lookup(c, "flag").IntPtr())
	require.Equal(t, "fallback", Lookup(c, "missing").String("fallback"))

	require.Equal(t, time.Unix(1700000000, 0).UTC(), *Lookup(c, "ts").Time())
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), *Lookup(c, "created_at").Time())

	metrics := Lookup(c, "metrics").Map()
	require.Equal(t, int64(3), metrics["like_count"])
	require.Equal(t, []any{int64(1), int64(2)}, metrics["nested"])
	require.Nil(t, Lookup(c, "name").Map())
}

func TestItemsSkipsNulls(t *testing.T) {
	c, err := Parse([]byte(`{"list":[{"a":1},null,{"a":2}]}`))
	require.NoError(t, err)

	items := Lookup(c, "list").Items()
	require.Len(t, items, 2)
	require.Equal(t, int64(2), items[1].Lookup("a").Int(0))
	require.Nil(t, Lookup(c, "list", "a").Items())
}
