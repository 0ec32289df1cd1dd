// Package diff reports drift between the schema the migrations describe
// and the schema a live database actually has.
package diff

import (
	"fmt"
	"sort"

	"github.com/kedaikopi/backoffice/internal/schema"
	"gorm.io/gorm"
)

// Diff types.
const (
	MissingTable  = "missing_table"
	ExtraTable    = "extra_table"
	MissingColumn = "missing_column"
	ExtraColumn   = "extra_column"
	MissingIndex  = "missing_index"
)

// Diff represents a difference between the expected and actual schema
type Diff struct {
	Type      string
	TableName string
	Column    string
	Index     string
}

func (d Diff) String() string {
	switch d.Type {
	case MissingColumn, ExtraColumn:
		return fmt.Sprintf("%s %s.%s", d.Type, d.TableName, d.Column)
	case MissingIndex:
		return fmt.Sprintf("%s %s on %s", d.Type, d.Index, d.TableName)
	}
	return fmt.Sprintf("%s %s", d.Type, d.TableName)
}

// CompareSchema lists what actual lacks or adds relative to expected,
// sorted by table then kind. Column types are not compared since drivers
// report their own spellings.
func CompareSchema(expected, actual *schema.SchemaState) []Diff {
	var diffs []Diff

	for _, name := range tableNames(expected) {
		want := expected.Tables[name]
		got, ok := actual.Tables[name]
		if !ok {
			diffs = append(diffs, Diff{Type: MissingTable, TableName: name})
			continue
		}
		diffs = append(diffs, compareColumns(want, got)...)
		diffs = append(diffs, compareIndexes(want, got)...)
	}

	for _, name := range tableNames(actual) {
		if _, ok := expected.Tables[name]; !ok {
			diffs = append(diffs, Diff{Type: ExtraTable, TableName: name})
		}
	}
	return diffs
}

func compareColumns(want, got *schema.Table) []Diff {
	var diffs []Diff
	for _, col := range want.Order {
		if _, ok := got.Columns[col]; !ok {
			diffs = append(diffs, Diff{Type: MissingColumn, TableName: want.Name, Column: col})
		}
	}
	for _, col := range got.Order {
		if _, ok := want.Columns[col]; !ok {
			diffs = append(diffs, Diff{Type: ExtraColumn, TableName: want.Name, Column: col})
		}
	}
	return diffs
}

// Only missing indexes count; databases add their own for keys.
func compareIndexes(want, got *schema.Table) []Diff {
	have := make(map[string]bool, len(got.Indexes))
	for _, idx := range got.Indexes {
		have[idx.Name] = true
	}
	var diffs []Diff
	for _, idx := range want.Indexes {
		if !have[idx.Name] {
			diffs = append(diffs, Diff{Type: MissingIndex, TableName: want.Name, Index: idx.Name})
		}
	}
	return diffs
}

func tableNames(s *schema.SchemaState) []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inspect reads the named tables from db into a SchemaState. Tables that
// do not exist are left out.
func Inspect(db *gorm.DB, tables []string) (*schema.SchemaState, error) {
	m := db.Migrator()
	sb := schema.NewSchemaBuilder()

	for _, name := range tables {
		if !m.HasTable(name) {
			continue
		}
		tb := sb.CreateTable(name)

		cols, err := m.ColumnTypes(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
		}
		for _, c := range cols {
			null, _ := c.Nullable()
			pk, _ := c.PrimaryKey()
			unique, _ := c.Unique()
			tb.AddColumnWithOptions(c.Name(), c.DatabaseTypeName(), null, pk, unique)
		}

		indexes, err := m.GetIndexes(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read indexes of %s: %w", name, err)
		}
		seen := make(map[string]bool, len(indexes))
		for _, idx := range indexes {
			seen[idx.Name()] = true
			if unique, _ := idx.Unique(); unique {
				tb.AddUniqueIndex(idx.Name(), idx.Columns()...)
			} else {
				tb.AddIndex(idx.Name(), idx.Columns()...)
			}
		}

		extra, err := expressionIndexes(db, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read indexes of %s: %w", name, err)
		}
		for _, idx := range extra {
			if !seen[idx] {
				tb.AddIndex(idx)
			}
		}
	}
	return sb.Schema, nil
}

// expressionIndexes lists index names gorm's postgres migrator leaves out
// because they cover expressions rather than plain columns.
func expressionIndexes(db *gorm.DB, table string) ([]string, error) {
	if db.Dialector.Name() != "postgres" {
		return nil, nil
	}
	var names []string
	err := db.Raw("SELECT indexname FROM pg_indexes WHERE schemaname = CURRENT_SCHEMA() AND tablename = ?", table).
		Scan(&names).Error
	return names, err
}
