package schema_test

import (
	"testing"

	"payment-relay/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Collapses(t *testing.T) {
	d := schema.Optional(schema.Optional(schema.String()))
	assert.Equal(t, schema.KindOptional, d.Kind())

	inner, ok := d.Elem()
	require.True(t, ok)
	assert.Equal(t, schema.KindString, inner.Kind())
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		in   schema.TypeDescriptor
		want schema.Kind
	}{
		{"Plain", schema.Number(), schema.KindNumber},
		{"Optional", schema.Optional(schema.Boolean()), schema.KindBoolean},
		{"OptionalArray", schema.Optional(schema.Array(schema.String())), schema.KindArray},
		{"ArrayStaysArray", schema.Array(schema.String()), schema.KindArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Unwrap().Kind())
		})
	}
}

func TestEnum_ValuesAreCopied(t *testing.T) {
	src := []string{"a", "b"}
	d := schema.Enum(src...)
	src[0] = "z"

	vals := d.Values()
	assert.Equal(t, []string{"a", "b"}, vals)

	vals[1] = "y"
	assert.Equal(t, []string{"a", "b"}, d.Values())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "optional<array<string>>", schema.Optional(schema.Array(schema.String())).Describe())
	assert.Equal(t, "enum(1|2|3)", schema.Enum("1", "2", "3").Describe())
	assert.Equal(t, "unsupported(object)", schema.Unsupported(schema.ReasonObject).Describe())
	assert.Equal(t, "array<array<number>>", schema.Array(schema.Array(schema.Number())).Describe())
}

func TestEqual(t *testing.T) {
	assert.True(t, schema.Array(schema.String()).Equal(schema.Array(schema.String())))
	assert.False(t, schema.Array(schema.String()).Equal(schema.Array(schema.Number())))
	assert.False(t, schema.Enum("a").Equal(schema.Enum("a", "b")))
	assert.True(t, schema.Optional(schema.Enum("a")).Equal(schema.Optional(schema.Enum("a"))))
	assert.False(t, schema.Unsupported(schema.ReasonTuple).Equal(schema.Unsupported(schema.ReasonNull)))
}

func TestElem_ScalarHasNone(t *testing.T) {
	_, ok := schema.DateTime().Elem()
	assert.False(t, ok)
	assert.Nil(t, schema.String().Values())
}
