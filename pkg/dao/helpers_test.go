package dao

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUuidifyString(t *testing.T) {
	valid := uuid.NewString()
	assert.Equal(t, valid, UuidifyString(valid).String())
	assert.Equal(t, uuid.Nil, UuidifyString("banana"))
	assert.Equal(t, uuid.Nil, UuidifyString(""))
}

func TestConvertSortByToSQL(t *testing.T) {
	sortMap := map[string]string{
		"subject":    "subject",
		"status":     "status",
		"created_at": "tickets.created_at",
	}

	assert.Equal(t, "subject asc", convertSortByToSQL("subject", sortMap, "subject asc"))
	assert.Equal(t, "status desc", convertSortByToSQL("status:desc", sortMap, "subject asc"))
	assert.Equal(t, "status desc, tickets.created_at asc", convertSortByToSQL("status:desc,created_at", sortMap, ""))
	// Unknown fields fall back to the default
	assert.Equal(t, "subject asc", convertSortByToSQL("nope", sortMap, "subject asc"))
	assert.Equal(t, "subject asc", convertSortByToSQL("", sortMap, "subject asc"))
	// Unknown fields mixed with known ones never leave a dangling separator
	assert.Equal(t, "status asc", convertSortByToSQL("status,bogus", sortMap, ""))
	assert.Equal(t, "status desc", convertSortByToSQL("bogus,status:desc", sortMap, ""))
	assert.Equal(t, "status desc, subject asc", convertSortByToSQL("status:desc,bogus,subject", sortMap, ""))
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", emailDomain("person@example.com"))
	assert.Equal(t, "example.com", emailDomain("person@EXAMPLE.COM"))
	assert.Equal(t, "example.com", emailDomain("a@b@example.com"))
	assert.Equal(t, "", emailDomain("no-at-sign"))
	assert.Equal(t, "", emailDomain("trailing@"))
	assert.Equal(t, "", emailDomain(""))
}
