package checks

import (
	"context"
	"fmt"

	"payment-relay/core/provision"
)

// Planner computes the provisioning plan without applying it.
type Planner interface {
	Plan(ctx context.Context) (*provision.Plan, error)
}

// SchemaReport describes drift between the desired collections and the store.
type SchemaReport struct {
	Database           string   `json:"database"`
	DatabaseExists     bool     `json:"database_exists"`
	Matched            bool     `json:"matched"`
	MissingCollections []string `json:"missing_collections"`
	MissingFields      []string `json:"missing_fields"`
	UnmappedFields     []string `json:"unmapped_fields"`
}

// CheckSchema reports missing collections and fields. Fields with no
// attribute equivalent are listed separately and do not count as drift.
func CheckSchema(ctx context.Context, planner Planner) (*SchemaReport, error) {
	plan, err := planner.Plan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to plan schema: %w", err)
	}

	report := &SchemaReport{
		Database:           plan.Database.Name,
		DatabaseExists:     plan.Database.ID != "",
		MissingCollections: []string{},
		MissingFields:      []string{},
		UnmappedFields:     []string{},
	}
	for _, a := range plan.Actions() {
		switch a.Type {
		case provision.ActionCreateCollection:
			report.MissingCollections = append(report.MissingCollections, a.Collection)
		case provision.ActionCreateField:
			report.MissingFields = append(report.MissingFields, a.Collection+"."+a.Field)
		case provision.ActionSkipField:
			report.UnmappedFields = append(report.UnmappedFields, a.Collection+"."+a.Field)
		}
	}
	report.Matched = report.DatabaseExists && len(report.MissingCollections) == 0 && len(report.MissingFields) == 0
	return report, nil
}
