package persistence

import _ "embed"

//go:embed schema/advancement-schema.sql
var schemaSQL string

// SchemaSQL returns the advancement DDL. It references the members
// table, so the roster schema must be applied first.
func SchemaSQL() string {
	return schemaSQL
}
