package schema_test

import (
	"testing"

	"payment-relay/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollection_KeepsOrder(t *testing.T) {
	c := schema.NewCollection("Products",
		schema.F("name", schema.String()),
		schema.F("price", schema.Number()),
		schema.F("active", schema.Boolean()),
	)

	assert.Equal(t, []string{"name", "price", "active"}, c.FieldNames())
	assert.Equal(t, 3, c.Len())
}

func TestNewCollection_DuplicateReplacesInPlace(t *testing.T) {
	c := schema.NewCollection("X",
		schema.F("a", schema.String()),
		schema.F("b", schema.String()),
		schema.F("a", schema.Number()),
	)

	assert.Equal(t, []string{"a", "b"}, c.FieldNames())
	d, ok := c.Field("a")
	require.True(t, ok)
	assert.Equal(t, schema.KindNumber, d.Kind())
}

func TestExtend_DoesNotMutateReceiver(t *testing.T) {
	base := schema.NewCollection("Products", schema.F("name", schema.String()))
	ext := base.Extend(schema.F("initiatedBy", schema.Optional(schema.String())))

	assert.Equal(t, []string{"name"}, base.FieldNames())
	assert.Equal(t, []string{"name", "initiatedBy"}, ext.FieldNames())
	assert.Equal(t, "Products", ext.Name)
}

func TestMerge(t *testing.T) {
	a := schema.NewCollection("A",
		schema.F("id", schema.String()),
		schema.F("amount", schema.String()),
	)
	b := schema.NewCollection("B",
		schema.F("amount", schema.Number()),
		schema.F("note", schema.Optional(schema.String())),
	)

	m := a.Merge(b)
	assert.Equal(t, "A", m.Name)
	assert.Equal(t, []string{"id", "amount", "note"}, m.FieldNames())

	amount, _ := m.Field("amount")
	assert.Equal(t, schema.KindNumber, amount.Kind())
}

func TestRename(t *testing.T) {
	c := schema.NewCollection("A", schema.F("x", schema.String())).Rename("B")
	assert.Equal(t, "B", c.Name)
	assert.Equal(t, []string{"x"}, c.FieldNames())
}

func TestDesiredSet(t *testing.T) {
	set := schema.DesiredSet{
		schema.NewCollection("Products"),
		schema.NewCollection("Invoices"),
	}

	assert.Equal(t, []string{"Products", "Invoices"}, set.Names())

	c, ok := set.Lookup("Invoices")
	assert.True(t, ok)
	assert.Equal(t, "Invoices", c.Name)

	_, ok = set.Lookup("Missing")
	assert.False(t, ok)
}

func TestFieldLookup_Missing(t *testing.T) {
	c := schema.NewCollection("A")
	_, ok := c.Field("nope")
	assert.False(t, ok)
}
