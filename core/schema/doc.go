// Package schema describes the declared shape of record collections.
//
// A field's shape is a TypeDescriptor: a closed set of variants (string,
// number, boolean, datetime, enum, array, optional, unsupported) that
// consumers dispatch on with a switch over Kind. Descriptors are built once
// from static declarations and never mutated.
//
// # Building schemas
//
//	products := schema.NewCollection("Products",
//	    schema.F("product_id", schema.String()),
//	    schema.F("product_cost", schema.Optional(schema.Number())),
//	)
//
// CollectionSchema keeps declaration order, which callers use for
// deterministic creation order. Extend and Merge return copies.
package schema
