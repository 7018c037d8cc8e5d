package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advpersistence "github.com/scoutsync/scoutsync/modules/advancement/infrastructure/persistence"
	"github.com/scoutsync/scoutsync/modules/roster/infrastructure/persistence"
)

func TestMigrateCmdRegistered(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "migrate")
}

func TestEmbeddedSchemas(t *testing.T) {
	roster := persistence.SchemaSQL()
	require.NotEmpty(t, roster)
	assert.Contains(t, roster, "CREATE TABLE IF NOT EXISTS members")
	assert.Contains(t, roster, "CREATE TABLE IF NOT EXISTS guardians")

	adv := advpersistence.SchemaSQL()
	require.NotEmpty(t, adv)
	assert.Contains(t, adv, "CREATE TABLE IF NOT EXISTS advancement_records")
	assert.Contains(t, adv, "CREATE TABLE IF NOT EXISTS rank_requirements")
}
