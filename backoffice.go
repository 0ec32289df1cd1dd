package backoffice

import (
	"github.com/kedaikopi/backoffice/internal/runner"
	"github.com/kedaikopi/backoffice/internal/schema"
)

// Migration is implemented by every catalog schema migration.
type Migration = runner.Migration

// SchemaBuilder is exported for use in migrations
type SchemaBuilder = schema.SchemaBuilder

// NewSchemaBuilder creates a new schema builder
func NewSchemaBuilder() *SchemaBuilder {
	return schema.NewSchemaBuilder()
}

var globalRegistry = runner.NewRegistry()

// RegisterMigration registers a migration in the global registry.
// Migration packages call it from init.
func RegisterMigration(m Migration) {
	if globalRegistry == nil {
		globalRegistry = runner.NewRegistry()
	}
	globalRegistry.RegisterMigration(m)
}

// GetGlobalRegistry returns the global registry
func GetGlobalRegistry() *runner.Registry {
	return globalRegistry
}

// SetGlobalRegistry sets the global registry (for testing)
func SetGlobalRegistry(reg *runner.Registry) {
	globalRegistry = reg
}
