package schema

import "strings"

// Kind tags a TypeDescriptor variant.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindDateTime
	KindEnum
	KindArray
	KindOptional
	KindUnsupported
)

var kindNames = map[Kind]string{
	KindString:      "string",
	KindNumber:      "number",
	KindBoolean:     "boolean",
	KindDateTime:    "datetime",
	KindEnum:        "enum",
	KindArray:       "array",
	KindOptional:    "optional",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Unsupported reasons. These shapes have no attribute equivalent in the store.
const (
	ReasonObject       = "object"
	ReasonUnion        = "union"
	ReasonIntersection = "intersection"
	ReasonTuple        = "tuple"
	ReasonRecord       = "record"
	ReasonLiteral      = "literal"
	ReasonNull         = "null"
)

// TypeDescriptor is the declared shape of a single field.
// The zero value is a String descriptor.
type TypeDescriptor struct {
	kind   Kind
	values []string
	inner  *TypeDescriptor
	reason string
}

// String returns a string descriptor.
func String() TypeDescriptor { return TypeDescriptor{kind: KindString} }

// Number returns a number descriptor.
func Number() TypeDescriptor { return TypeDescriptor{kind: KindNumber} }

// Boolean returns a boolean descriptor.
func Boolean() TypeDescriptor { return TypeDescriptor{kind: KindBoolean} }

// DateTime returns a datetime descriptor.
func DateTime() TypeDescriptor { return TypeDescriptor{kind: KindDateTime} }

// Enum returns an enum descriptor over the given values, in order.
func Enum(values ...string) TypeDescriptor {
	cp := make([]string, len(values))
	copy(cp, values)
	return TypeDescriptor{kind: KindEnum, values: cp}
}

// Array returns an array descriptor with the given element shape.
func Array(element TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{kind: KindArray, inner: &element}
}

// Optional marks a descriptor as not required.
// Optional(Optional(x)) collapses to Optional(x).
func Optional(inner TypeDescriptor) TypeDescriptor {
	if inner.kind == KindOptional {
		return inner
	}
	return TypeDescriptor{kind: KindOptional, inner: &inner}
}

// Unsupported returns a descriptor for a shape that is intentionally not
// mapped, e.g. Unsupported(ReasonObject).
func Unsupported(reason string) TypeDescriptor {
	return TypeDescriptor{kind: KindUnsupported, reason: reason}
}

// Kind returns the variant tag.
func (d TypeDescriptor) Kind() Kind { return d.kind }

// Values returns a copy of the enum values. Nil for other kinds.
func (d TypeDescriptor) Values() []string {
	if d.kind != KindEnum {
		return nil
	}
	cp := make([]string, len(d.values))
	copy(cp, d.values)
	return cp
}

// Elem returns the wrapped descriptor of an Array or Optional.
// ok is false for every other kind.
func (d TypeDescriptor) Elem() (TypeDescriptor, bool) {
	if (d.kind == KindArray || d.kind == KindOptional) && d.inner != nil {
		return *d.inner, true
	}
	return TypeDescriptor{}, false
}

// Reason returns why an Unsupported descriptor is not mapped.
func (d TypeDescriptor) Reason() string { return d.reason }

// IsOptional reports whether the outermost layer is Optional.
func (d TypeDescriptor) IsOptional() bool { return d.kind == KindOptional }

// Unwrap strips one Optional layer. Other descriptors are returned as is.
func (d TypeDescriptor) Unwrap() TypeDescriptor {
	if inner, ok := d.Elem(); ok && d.kind == KindOptional {
		return inner
	}
	return d
}

// Describe renders the descriptor for logs, e.g. "optional<array<string>>".
func (d TypeDescriptor) Describe() string {
	switch d.kind {
	case KindEnum:
		return "enum(" + strings.Join(d.values, "|") + ")"
	case KindArray, KindOptional:
		inner, _ := d.Elem()
		return d.kind.String() + "<" + inner.Describe() + ">"
	case KindUnsupported:
		return "unsupported(" + d.reason + ")"
	default:
		return d.kind.String()
	}
}

// Equal reports structural equality.
func (d TypeDescriptor) Equal(o TypeDescriptor) bool {
	if d.kind != o.kind || d.reason != o.reason || len(d.values) != len(o.values) {
		return false
	}
	for i := range d.values {
		if d.values[i] != o.values[i] {
			return false
		}
	}
	di, dok := d.Elem()
	oi, ook := o.Elem()
	if dok != ook {
		return false
	}
	if dok {
		return di.Equal(oi)
	}
	return true
}
