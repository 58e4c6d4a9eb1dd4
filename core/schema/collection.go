package schema

// Field is a named, typed slot of a collection.
type Field struct {
	Name string
	Type TypeDescriptor
}

// F is shorthand for building a Field.
func F(name string, t TypeDescriptor) Field {
	return Field{Name: name, Type: t}
}

// CollectionSchema is a named collection with fields in declaration order.
type CollectionSchema struct {
	Name   string
	fields []Field
	index  map[string]int
}

// NewCollection builds a schema. A repeated field name replaces the earlier
// definition but keeps its position.
func NewCollection(name string, fields ...Field) CollectionSchema {
	c := CollectionSchema{Name: name, index: make(map[string]int, len(fields))}
	for _, f := range fields {
		c.put(f)
	}
	return c
}

func (c *CollectionSchema) put(f Field) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[f.Name]; ok {
		c.fields[i] = f
		return
	}
	c.index[f.Name] = len(c.fields)
	c.fields = append(c.fields, f)
}

// Fields returns a copy of the fields in declaration order.
func (c CollectionSchema) Fields() []Field {
	cp := make([]Field, len(c.fields))
	copy(cp, c.fields)
	return cp
}

// FieldNames returns the field names in declaration order.
func (c CollectionSchema) FieldNames() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (c CollectionSchema) Field(name string) (TypeDescriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return TypeDescriptor{}, false
	}
	return c.fields[i].Type, true
}

// Len returns the number of fields.
func (c CollectionSchema) Len() int { return len(c.fields) }

// Extend returns a copy with the given fields appended (or replaced in place).
func (c CollectionSchema) Extend(fields ...Field) CollectionSchema {
	out := NewCollection(c.Name, c.fields...)
	for _, f := range fields {
		out.put(f)
	}
	return out
}

// Merge returns the union of c and other under c's name.
// A field defined in both takes other's descriptor.
func (c CollectionSchema) Merge(other CollectionSchema) CollectionSchema {
	return c.Extend(other.fields...)
}

// Rename returns a copy under a different collection name.
func (c CollectionSchema) Rename(name string) CollectionSchema {
	out := NewCollection(name, c.fields...)
	return out
}

// DesiredSet is the ordered list of collections a store should contain.
type DesiredSet []CollectionSchema

// Names returns the collection names in order.
func (s DesiredSet) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a collection by name.
func (s DesiredSet) Lookup(name string) (CollectionSchema, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return CollectionSchema{}, false
}
