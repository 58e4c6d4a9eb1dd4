package checks

import (
	"fmt"
	"sort"
)

// Inspector reports missing catalog columns per table.
type Inspector interface {
	Inspect() (map[string][]string, error)
}

// CatalogReport strictly types the result of a sql catalog check.
type CatalogReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
}

// TableReport is the state of one catalog table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckCatalog verifies the sql catalog tables against their models.
func CheckCatalog(inspector Inspector, tables []string) (*CatalogReport, error) {
	if inspector == nil {
		return nil, fmt.Errorf("catalog inspector is nil")
	}
	missing, err := inspector.Inspect()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect catalog: %w", err)
	}

	report := &CatalogReport{Matched: true, Tables: make(map[string]TableReport, len(tables))}
	names := append([]string(nil), tables...)
	for t := range missing {
		names = append(names, t)
	}
	sort.Strings(names)

	for _, t := range names {
		cols := missing[t]
		if len(cols) == 0 {
			report.Tables[t] = TableReport{MissingColumns: []string{}, Status: "ok"}
			continue
		}
		report.Matched = false
		report.Tables[t] = TableReport{MissingColumns: cols, Status: "error"}
	}
	return report, nil
}
