package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidateSubdomain(t *testing.T) {
	valid := []string{"acme", "acme-inc", "a1b", "big-corp-42", strings.Repeat("a", 50)}
	for _, s := range valid {
		assert.NoError(t, ValidateSubdomain(s), s)
	}

	invalid := []string{
		"",
		"ab",                       // too short
		strings.Repeat("a", 51),    // too long
		"-acme",                    // leading hyphen
		"acme-",                    // trailing hyphen
		"Acme",                     // uppercase
		"acme.inc",                 // dot
		"acme inc",                 // space
		"acme_inc",                 // underscore
	}
	for _, s := range invalid {
		assert.Error(t, ValidateSubdomain(s), s)
	}
}

func TestOrganizationBeforeCreate(t *testing.T) {
	org := Organization{Name: "Acme Inc", Subdomain: "acme"}
	assert.NoError(t, org.BeforeCreate(nil))
	assert.NotEmpty(t, org.UUID)

	blankName := Organization{Subdomain: "acme"}
	assert.Error(t, blankName.BeforeCreate(nil))

	badSubdomain := Organization{Name: "Acme Inc", Subdomain: "-bad-"}
	assert.Error(t, badSubdomain.BeforeCreate(nil))
}

// Organizations are never hard deleted. The model must carry gorm's soft
// delete marker so Delete stamps deleted_at and every query excludes removed
// tenants.
func TestOrganizationSoftDeletes(t *testing.T) {
	field, found := reflect.TypeOf(Organization{}).FieldByName("DeletedAt")
	assert.True(t, found)
	assert.Equal(t, reflect.TypeOf(gorm.DeletedAt{}), field.Type)

	// The marker never leaks into API payloads.
	org := Organization{
		Name:      "Acme Inc",
		Subdomain: "acme",
		DeletedAt: gorm.DeletedAt{Time: time.Now(), Valid: true},
	}
	payload, err := json.Marshal(&org)
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), "deleted_at")
	assert.NotContains(t, string(payload), "DeletedAt")
}
