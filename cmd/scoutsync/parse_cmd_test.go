package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	roster := []string{
		`"Troop 0123 B","Some Council"`,
		`ADULT MEMBERS`,
		`"Member ID","First Name"`,
	}
	assert.Equal(t, kindRoster, detectKind(roster))

	advancement := []string{
		`"BSA Member ID","First Name","Last Name","Advancement Type","Advancement"`,
		`"111","Tim","Smith","Rank","Scout"`,
	}
	assert.Equal(t, kindAdvancement, detectKind(advancement))

	assert.Equal(t, "", detectKind([]string{"random", "text"}))
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, 1, exitCode(assert.AnError))
	assert.Equal(t, exitUsage, exitCode(withCode(exitUsage, assert.AnError)))
}
