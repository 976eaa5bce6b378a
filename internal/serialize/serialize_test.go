package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serializableThing struct {
	Name string
}

type unserializableThing struct {
	Fn func()
}

func TestEagerNilIsNotAnError(t *testing.T) {
	b, err := Eager("nothing", nil)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestEagerMarshalsValue(t *testing.T) {
	b, err := Eager("thing", serializableThing{Name: "backend"})
	require.NoError(t, err)
	assert.Contains(t, string(b), "backend")
}

func TestEagerFailsLoudlyOnUnserializableValue(t *testing.T) {
	_, err := Eager("thing", unserializableThing{Fn: func() {}})
	assert.Error(t, err)
}
