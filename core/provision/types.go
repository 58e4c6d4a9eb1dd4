package provision

import (
	"errors"

	"payment-relay/core/store"
)

// ErrAmbiguousDatabase is returned when more than one database carries the
// requested name.
var ErrAmbiguousDatabase = errors.New("ambiguous database name")

// ActionType represents the type of a planned store mutation.
type ActionType string

const (
	// ActionCreateCollection creates a missing collection.
	ActionCreateCollection ActionType = "create_collection"
	// ActionCreateField creates a missing attribute.
	ActionCreateField ActionType = "create_field"
	// ActionSkipField records a missing field that has no store equivalent.
	ActionSkipField ActionType = "skip_field"
)

// Action represents one planned operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Collection is the collection name.
	Collection string `json:"collection"`

	// Field is the field name. Empty for collection actions.
	Field string `json:"field,omitempty"`

	// Attribute is the attribute that would be created.
	// Only populated for ActionCreateField.
	Attribute *store.Attribute `json:"attribute,omitempty"`

	// Reason explains why this action is needed, or why a field is skipped.
	Reason string `json:"reason"`
}

// CollectionPlan holds the actions for a single desired collection.
type CollectionPlan struct {
	// Name is the collection name.
	Name string `json:"name"`

	// ID is the existing collection id. Empty when the collection is missing.
	ID string `json:"id,omitempty"`

	// Exists reports whether the collection is already in the store.
	Exists bool `json:"exists"`

	// ExistingFields lists attribute keys already present.
	ExistingFields []string `json:"existing_fields,omitempty"`

	// Actions are the operations for this collection, in declaration order.
	Actions []Action `json:"actions"`
}

// Plan contains the planned actions for a whole desired set.
type Plan struct {
	// Database is the target database. ID is empty if it does not exist yet.
	Database store.Database `json:"database"`

	// Collections holds one entry per desired collection, in order.
	Collections []CollectionPlan `json:"collections"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// Actions returns every action of the plan in execution order.
func (p *Plan) Actions() []Action {
	var out []Action
	for _, c := range p.Collections {
		out = append(out, c.Actions...)
	}
	return out
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Collections is the number of desired collections.
	Collections int `json:"collections"`

	// MissingCollections counts collections that will be created.
	MissingCollections int `json:"missing_collections"`

	// MissingFields counts fields that will be created.
	MissingFields int `json:"missing_fields"`

	// SkippedFields counts missing fields that have no store equivalent.
	SkippedFields int `json:"skipped_fields"`
}

// Outcome is the result of a single field creation.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FieldOutcome describes what CreateField did.
type FieldOutcome struct {
	Outcome Outcome
	// Attribute is the attribute that was (or would have been) created.
	Attribute store.Attribute
	// Reason is set for skipped fields.
	Reason string
	// Err is set for failed fields.
	Err error
}

// FieldFailure is a logged and swallowed field creation error.
type FieldFailure struct {
	Collection string `json:"collection"`
	Field      string `json:"field"`
	Error      string `json:"error"`
}

// Report summarizes an applied reconciliation.
type Report struct {
	Database            store.Database `json:"database"`
	CollectionsCreated  []string       `json:"collections_created"`
	CollectionsExisting []string       `json:"collections_existing"`
	FieldsCreated       int            `json:"fields_created"`
	FieldsSkipped       int            `json:"fields_skipped"`
	FieldsFailed        int            `json:"fields_failed"`
	Failures            []FieldFailure `json:"failures"`
}

func (r *Report) record(collection, field string, out FieldOutcome) {
	switch out.Outcome {
	case OutcomeCreated:
		r.FieldsCreated++
	case OutcomeSkipped:
		r.FieldsSkipped++
	case OutcomeFailed:
		r.FieldsFailed++
		msg := ""
		if out.Err != nil {
			msg = out.Err.Error()
		}
		r.Failures = append(r.Failures, FieldFailure{Collection: collection, Field: field, Error: msg})
	}
}

// Mutations returns the number of collections and fields the run created.
func (r *Report) Mutations() int {
	return len(r.CollectionsCreated) + r.FieldsCreated
}
