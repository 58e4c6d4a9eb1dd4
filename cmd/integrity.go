package cmd

import (
	"context"
	"errors"
	"fmt"

	"payment-relay/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag         bool
	integrityAsJSON bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the store schema, archive bucket and sql catalog",
	Long: `Reports desired collections and fields missing from the structured store,
whether the archive bucket exists and, for the sql backend, whether the catalog
tables carry every required column. Nothing is modified unless --fix is given,
which only creates a missing archive bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, l, err := loadCLI()
		if err != nil {
			return err
		}
		defer l.Sync()

		d, err := newDeps(ctx, cfg, l)
		if err != nil {
			return err
		}
		svc := integrity.NewService(d.provisioner, d.integrityOptions(), l)
		return runIntegrityChecks(ctx, svc, l)
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the archive bucket when missing")
	integrityCmd.Flags().BoolVar(&integrityAsJSON, "json", false, "Print the combined report as JSON")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, svc *integrity.Service, l *zap.Logger) error {
	report := map[string]interface{}{}
	failed := false

	schemaReport, err := svc.CheckSchema(ctx)
	if err != nil {
		return err
	}
	report["schema"] = schemaReport
	if !schemaReport.Matched {
		failed = true
		l.Warn("Schema drift detected",
			zap.Bool("database_exists", schemaReport.DatabaseExists),
			zap.Strings("missing_collections", schemaReport.MissingCollections),
			zap.Strings("missing_fields", schemaReport.MissingFields),
		)
	} else {
		l.Info("Schema matches", zap.String("database", schemaReport.Database))
	}

	archiveReport, err := svc.CheckArchive(ctx)
	switch {
	case errors.Is(err, integrity.ErrNotConfigured):
		l.Info("Archive check skipped: archiving is disabled")
	case err != nil:
		return err
	default:
		if !archiveReport.Exists && fixFlag {
			if err := svc.FixArchive(ctx); err != nil {
				return err
			}
			archiveReport.Exists = true
			l.Info("Archive bucket created", zap.String("bucket", archiveReport.Bucket))
		}
		if !archiveReport.Exists {
			failed = true
			l.Warn("Archive bucket missing", zap.String("bucket", archiveReport.Bucket))
		}
		report["archive"] = archiveReport
	}

	catalogReport, err := svc.CheckCatalog()
	switch {
	case errors.Is(err, integrity.ErrNotConfigured):
	case err != nil:
		return err
	default:
		report["catalog"] = catalogReport
		if !catalogReport.Matched {
			failed = true
			for table, t := range catalogReport.Tables {
				if t.Status != "ok" {
					l.Warn("Catalog table incomplete", zap.String("table", table), zap.Strings("missing_columns", t.MissingColumns))
				}
			}
		}
	}

	if integrityAsJSON {
		if err := printJSON(report); err != nil {
			return err
		}
	}
	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
