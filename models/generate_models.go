package models

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Reports database columns that no Go model field maps to, e.g. columns left behind after a
field was renamed.

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_link
*/

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Project{}, &Experience{}, &Education{}, &TechStack{}, &Query{}}
}

// AutoMigrate creates or updates the tables, the unique external id indexes and the order indexes.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// GenerateModels migrates the schema and writes typed query helpers to ./generated.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{SkipDefaultTransaction: true, PrepareStmt: false})
	if err := AutoMigrate(migrateDB); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, Experience{}, Education{}, TechStack{}, Query{})
	g.Execute()

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

// ColumnMismatchReport lists, per table, the columns that exist in the database but in no model field.
func ColumnMismatchReport(db *gorm.DB) (string, error) {
	var b strings.Builder
	b.WriteString("=== COLUMN MISMATCH REPORT ===\n")

	cache := &sync.Map{}
	total := 0
	for _, model := range All() {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return "", fmt.Errorf("parse model schema: %w", err)
		}
		fmt.Fprintf(&b, "--- Table: %s ---\n", s.Table)

		if !db.Migrator().HasTable(s.Table) {
			b.WriteString("Table does not exist yet (will be created during migration)\n")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(s.Table)
		if err != nil {
			return "", fmt.Errorf("read columns of %s: %w", s.Table, err)
		}

		known := make(map[string]bool, len(s.DBNames))
		for _, name := range s.DBNames {
			known[name] = true
		}

		var mismatches []string
		for _, column := range columnTypes {
			if !known[column.Name()] {
				mismatches = append(mismatches, column.Name())
			}
		}
		sort.Strings(mismatches)

		if len(mismatches) == 0 {
			b.WriteString("All columns are accounted for in the model.\n")
			continue
		}
		fmt.Fprintf(&b, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(&b, "  - %s\n", col)
		}
		total += len(mismatches)
	}

	fmt.Fprintf(&b, "=== SUMMARY ===\nTotal mismatched columns across all tables: %d\n", total)
	return b.String(), nil
}
