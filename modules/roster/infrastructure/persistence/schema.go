package persistence

import _ "embed"

//go:embed schema/roster-schema.sql
var schemaSQL string

// SchemaSQL returns the roster DDL. All statements are idempotent, so
// applying it repeatedly is safe.
func SchemaSQL() string {
	return schemaSQL
}
