package schema

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaBuilder replays migrations against an in-memory schema so the
// expected catalog layout can be inspected without a database.
type SchemaBuilder struct {
	Schema *SchemaState
}

// SchemaState is the simulated set of tables.
type SchemaState struct {
	Tables map[string]*Table
}

// Table is a simulated table.
type Table struct {
	Name        string
	Columns     map[string]*Column
	Order       []string
	Indexes     []Index
	ForeignKeys []ForeignKey
	SoftDelete  bool
}

// Column is a simulated column.
type Column struct {
	Name   string
	Type   string
	Null   bool
	PK     bool
	Unique bool
}

// Index is a named index over one or more columns.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// ForeignKey references another table's primary key.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string
}

// TableBuilder provides the fluent API used by migrations.
type TableBuilder struct {
	builder *SchemaBuilder
	table   *Table
}

// NewSchemaBuilder creates an empty schema builder.
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		Schema: &SchemaState{
			Tables: make(map[string]*Table),
		},
	}
}

func newTable(name string) *Table {
	return &Table{
		Name:    name,
		Columns: make(map[string]*Column),
	}
}

// CreateTable creates (or replaces) a table.
func (b *SchemaBuilder) CreateTable(name string) *TableBuilder {
	table := newTable(name)
	b.Schema.Tables[name] = table
	return &TableBuilder{builder: b, table: table}
}

// AlterTable returns a builder for an existing table, creating it if missing.
func (b *SchemaBuilder) AlterTable(name string) *TableBuilder {
	table, exists := b.Schema.Tables[name]
	if !exists {
		table = newTable(name)
		b.Schema.Tables[name] = table
	}
	return &TableBuilder{builder: b, table: table}
}

// DropTable removes a table.
func (b *SchemaBuilder) DropTable(name string) {
	delete(b.Schema.Tables, name)
}

// TableExists reports whether a table is present.
func (b *SchemaBuilder) TableExists(name string) bool {
	_, exists := b.Schema.Tables[name]
	return exists
}

// GetTable returns a table by name.
func (b *SchemaBuilder) GetTable(name string) (*Table, bool) {
	table, exists := b.Schema.Tables[name]
	return table, exists
}

// ID adds the conventional auto-increment primary key.
func (t *TableBuilder) ID() *TableBuilder {
	return t.AddColumnWithOptions("id", "bigint", false, true, false)
}

// Timestamps adds created_at and updated_at.
func (t *TableBuilder) Timestamps() *TableBuilder {
	return t.AddColumnWithOptions("created_at", "timestamp", true, false, false).
		AddColumnWithOptions("updated_at", "timestamp", true, false, false)
}

// SoftDeletes adds the deleted_at tombstone column and its index.
func (t *TableBuilder) SoftDeletes() *TableBuilder {
	t.table.SoftDelete = true
	t.AddColumnWithOptions("deleted_at", "timestamp", true, false, false)
	return t.AddIndex("idx_"+t.table.Name+"_deleted_at", "deleted_at")
}

// AddColumn adds a NOT NULL column.
func (t *TableBuilder) AddColumn(name, colType string) *TableBuilder {
	return t.AddColumnWithOptions(name, colType, false, false, false)
}

// AddColumnWithOptions adds a column with explicit options.
func (t *TableBuilder) AddColumnWithOptions(name, colType string, null, pk, unique bool) *TableBuilder {
	if _, exists := t.table.Columns[name]; !exists {
		t.table.Order = append(t.table.Order, name)
	}
	t.table.Columns[name] = &Column{
		Name:   name,
		Type:   colType,
		Null:   null,
		PK:     pk,
		Unique: unique,
	}
	return t
}

// DropColumn removes a column.
func (t *TableBuilder) DropColumn(name string) *TableBuilder {
	delete(t.table.Columns, name)
	for i, n := range t.table.Order {
		if n == name {
			t.table.Order = append(t.table.Order[:i], t.table.Order[i+1:]...)
			break
		}
	}
	return t
}

// ModifyColumn changes a column's type or options.
func (t *TableBuilder) ModifyColumn(name, colType string, null, pk, unique bool) *TableBuilder {
	if col, exists := t.table.Columns[name]; exists {
		col.Type = colType
		col.Null = null
		col.PK = pk
		col.Unique = unique
	}
	return t
}

// RenameColumn renames a column, keeping its position.
func (t *TableBuilder) RenameColumn(oldName, newName string) *TableBuilder {
	col, exists := t.table.Columns[oldName]
	if !exists {
		return t
	}
	col.Name = newName
	t.table.Columns[newName] = col
	delete(t.table.Columns, oldName)
	for i, n := range t.table.Order {
		if n == oldName {
			t.table.Order[i] = newName
		}
	}
	return t
}

// AddIndex adds a non-unique index.
func (t *TableBuilder) AddIndex(name string, columns ...string) *TableBuilder {
	t.table.Indexes = append(t.table.Indexes, Index{Name: name, Columns: columns})
	return t
}

// AddUniqueIndex adds a unique index.
func (t *TableBuilder) AddUniqueIndex(name string, columns ...string) *TableBuilder {
	t.table.Indexes = append(t.table.Indexes, Index{Name: name, Columns: columns, Unique: true})
	return t
}

// DropIndex removes an index by name.
func (t *TableBuilder) DropIndex(name string) *TableBuilder {
	for i, idx := range t.table.Indexes {
		if idx.Name == name {
			t.table.Indexes = append(t.table.Indexes[:i], t.table.Indexes[i+1:]...)
			break
		}
	}
	return t
}

// AddForeignKey references refTable.refColumn from column.
func (t *TableBuilder) AddForeignKey(column, refTable, refColumn, onDelete string) *TableBuilder {
	t.table.ForeignKeys = append(t.table.ForeignKeys, ForeignKey{
		Column:    column,
		RefTable:  refTable,
		RefColumn: refColumn,
		OnDelete:  onDelete,
	})
	return t
}

// String renders the schema with tables sorted by name and columns in
// declaration order.
func (s *SchemaState) String() string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		table := s.Tables[name]
		sb.WriteString(fmt.Sprintf("Table: %s\n", name))
		for _, colName := range table.Order {
			col := table.Columns[colName]
			attrs := []string{}
			if col.PK {
				attrs = append(attrs, "PRIMARY KEY")
			}
			if col.Unique {
				attrs = append(attrs, "UNIQUE")
			}
			if col.Null {
				attrs = append(attrs, "NULL")
			} else {
				attrs = append(attrs, "NOT NULL")
			}
			sb.WriteString(fmt.Sprintf("  Column: %s %s [%s]\n", col.Name, col.Type, strings.Join(attrs, ", ")))
		}
		for _, idx := range table.Indexes {
			kind := "Index"
			if idx.Unique {
				kind = "Unique"
			}
			sb.WriteString(fmt.Sprintf("  %s: %s (%s)\n", kind, idx.Name, strings.Join(idx.Columns, ", ")))
		}
		for _, fk := range table.ForeignKeys {
			sb.WriteString(fmt.Sprintf("  Foreign key: %s -> %s.%s", fk.Column, fk.RefTable, fk.RefColumn))
			if fk.OnDelete != "" {
				sb.WriteString(" ON DELETE " + fk.OnDelete)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
