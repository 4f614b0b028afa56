package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsUUID(t *testing.T) {
	v := New()
	assert.Len(t, v, 36)
	assert.True(t, IsUUID(v))
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		v := New()
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("e237cf7e-298f-4941-9fbc-f4df6de523c8"))
	assert.False(t, IsUUID("12"))
	assert.False(t, IsUUID("e237cf7e"))
}

func TestParseShort(t *testing.T) {
	n, err := ParseShort("12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = ParseShort("0")
	assert.Error(t, err)
	_, err = ParseShort("-3")
	assert.Error(t, err)
	_, err = ParseShort("abc")
	assert.Error(t, err)
}

func TestAbbrev(t *testing.T) {
	assert.Equal(t, "e237cf7e", Abbrev("e237cf7e-298f-4941-9fbc-f4df6de523c8"))
	assert.Equal(t, "short", Abbrev("short"))
	assert.Equal(t, "not-a-uuid-but-long", Abbrev("not-a-uuid-but-long"))
}
