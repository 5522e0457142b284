package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableInt64(t *testing.T) {
	n := NullInt64()
	assert.True(t, n.IsNil())
	assert.Equal(t, int64(0), n.Int64())

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	n.Set(42)
	assert.False(t, n.IsNil())
	data, err = json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "42", string(data))

	var back NullableInt64
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsNil())
	require.NoError(t, json.Unmarshal([]byte("7"), &back))
	assert.Equal(t, int64(7), back.Int64())

	// zero is a real value, distinct from null
	zero := NullableInt64From(0)
	assert.False(t, zero.IsNil())
}

func TestNullableString(t *testing.T) {
	s := NullString()
	assert.True(t, s.IsNil())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	s.Set("hello")
	assert.Equal(t, "hello", s.String())

	var back NullableString
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &back))
	assert.Equal(t, "x", back.String())
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsNil())
}
