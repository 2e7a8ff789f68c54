package dao

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

// The owner count must lock the owner rows, not aggregate over them: two
// transactions demoting different owners of the same organization block on
// each other's row instead of each counting the other as remaining.
func TestOwnerRowsTakeRowLocks(t *testing.T) {
	orgUUID := uuid.NewString()

	sql := dryRunDB(t).ToSQL(func(tx *gorm.DB) *gorm.DB {
		var owners []models.Membership
		return ownerRows(tx, orgUUID).Find(&owners)
	})

	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "ORDER BY uuid")
	assert.Contains(t, sql, "organization_uuid = ")
	assert.Contains(t, sql, "role = ")
}

func TestGuardLastOwnerTripsOnSoloOwner(t *testing.T) {
	d := membershipDaoImpl{}

	err := d.guardLastOwner(dryRunDB(t), uuid.NewString())

	daoErr := &ce.DaoError{}
	require.ErrorAs(t, err, &daoErr)
	assert.True(t, daoErr.BadValidation)
	assert.Contains(t, daoErr.Message, "last owner")
}

func TestMembershipModelToApiFields(t *testing.T) {
	member := models.Membership{
		OrganizationUUID: uuid.NewString(),
		UserUUID:         uuid.NewString(),
		Role:             models.RoleAgent,
		User: &models.User{
			Email:    "jdoe@example.com",
			FullName: "Jane Doe",
		},
	}

	var resp api.MembershipResponse
	MembershipModelToApiFields(member, &resp)
	assert.Equal(t, member.OrganizationUUID, resp.OrganizationUUID)
	assert.Equal(t, member.UserUUID, resp.UserUUID)
	assert.Equal(t, "agent", resp.Role)
	assert.Equal(t, "jdoe@example.com", resp.UserEmail)
	assert.Equal(t, "Jane Doe", resp.UserFullName)
}
