package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDict(t *testing.T) *Dictionary {
	t.Helper()
	v, err := Decode([]byte("d3:bard3:bazi7e4:name6:foobare3:foo3:bare"))
	assert.NoError(t, err)
	return v.(*Dictionary)
}

func TestCheckPath(t *testing.T) {
	d := testDict(t)
	assert.True(t, CheckPath(d, "foo"))
	assert.False(t, CheckPath(d, "baz"))
	assert.True(t, CheckPath(d, "bar"))
	assert.True(t, CheckPath(d, "bar.baz"))
	assert.False(t, CheckPath(d, "bar.foo"))
	assert.False(t, CheckPath(d, "foo.bar"))
}

func TestGetString(t *testing.T) {
	d := testDict(t)
	s, ok := GetString(d, "foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", s)

	s, ok = GetString(d, "bar.name")
	assert.True(t, ok)
	assert.Equal(t, "foobar", s)

	_, ok = GetString(d, "bar.baz")
	assert.False(t, ok)
	_, ok = GetString(d, "missing")
	assert.False(t, ok)
}

func TestGetInt(t *testing.T) {
	d := testDict(t)
	n, ok := GetInt(d, "bar.baz")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = GetInt(d, "foo")
	assert.False(t, ok)
}

func TestGetDict(t *testing.T) {
	d := testDict(t)
	sub, ok := GetDict(d, "bar")
	assert.True(t, ok)
	assert.Equal(t, 2, sub.Len())

	_, ok = GetDict(d, "foo")
	assert.False(t, ok)
}

func TestGetList(t *testing.T) {
	v, err := Decode([]byte("d4:tierll3:urleee"))
	assert.NoError(t, err)
	d := v.(*Dictionary)

	l, ok := GetList(d, "tier")
	assert.True(t, ok)
	assert.Len(t, l, 1)
}
