package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/api"
	ce "github.com/ticketing-services/ticketing-backend/pkg/errors"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type membershipDaoImpl struct {
	db *gorm.DB
}

func GetMembershipDao(db *gorm.DB) MembershipDao {
	return membershipDaoImpl{db: db}
}

func (d membershipDaoImpl) Create(ctx context.Context, orgUUID string, memberReq api.MembershipRequest) (api.MembershipResponse, error) {
	var member models.Membership
	var user models.User

	member.OrganizationUUID = orgUUID
	if memberReq.Role != nil {
		member.Role = models.Role(*memberReq.Role)
	}

	pdb := d.db.WithContext(ctx)

	// Members can be added by uuid or, for invites, by email address.
	switch {
	case memberReq.UserUUID != nil && *memberReq.UserUUID != "":
		if err := pdb.Where("uuid = ?", UuidifyString(*memberReq.UserUUID)).First(&user).Error; err != nil {
			return api.MembershipResponse{}, DBErrorToApi(err, "User", memberReq.UserUUID)
		}
	case memberReq.UserEmail != nil && *memberReq.UserEmail != "":
		if err := pdb.Where("email = ?", *memberReq.UserEmail).First(&user).Error; err != nil {
			return api.MembershipResponse{}, DBErrorToApi(err, "User", nil)
		}
	default:
		return api.MembershipResponse{}, &ce.DaoError{BadValidation: true, Message: "Either user_uuid or user_email must be provided"}
	}
	member.UserUUID = user.UUID

	if err := pdb.Create(&member).Error; err != nil {
		return api.MembershipResponse{}, DBErrorToApi(err, "Membership", nil)
	}

	member.User = &user
	var resp api.MembershipResponse
	MembershipModelToApiFields(member, &resp)
	return resp, nil
}

func (d membershipDaoImpl) Fetch(ctx context.Context, orgUUID string, uuid string) (api.MembershipResponse, error) {
	member, err := d.fetchMembership(ctx, orgUUID, uuid)
	if err != nil {
		return api.MembershipResponse{}, err
	}
	var resp api.MembershipResponse
	MembershipModelToApiFields(member, &resp)
	return resp, nil
}

func (d membershipDaoImpl) fetchMembership(ctx context.Context, orgUUID string, uuid string) (models.Membership, error) {
	found := models.Membership{}
	result := d.db.WithContext(ctx).
		Preload("User").
		Where("uuid = ? AND organization_uuid = ?", UuidifyString(uuid), UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "Membership", &uuid)
	}
	return found, nil
}

func (d membershipDaoImpl) List(ctx context.Context, orgUUID string, paginationData api.PaginationData) (api.MembershipCollectionResponse, int64, error) {
	var totalMembers int64
	members := make([]models.Membership, 0)

	filteredDB := d.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("organization_members.organization_uuid = ?", UuidifyString(orgUUID))

	filteredDB.Count(&totalMembers)
	if filteredDB.Error != nil {
		return api.MembershipCollectionResponse{}, totalMembers, filteredDB.Error
	}

	sortMap := map[string]string{
		"role":       "role",
		"created_at": "organization_members.created_at",
	}
	order := convertSortByToSQL(paginationData.SortBy, sortMap, "organization_members.created_at asc")

	result := filteredDB.
		Preload("User").
		Order(order).
		Limit(paginationData.Limit).
		Offset(paginationData.Offset).
		Find(&members)
	if result.Error != nil {
		return api.MembershipCollectionResponse{}, totalMembers, result.Error
	}

	resp := make([]api.MembershipResponse, len(members))
	for i := 0; i < len(members); i++ {
		MembershipModelToApiFields(members[i], &resp[i])
	}
	return api.MembershipCollectionResponse{Data: resp}, totalMembers, nil
}

func (d membershipDaoImpl) UpdateRole(ctx context.Context, orgUUID string, uuid string, role models.Role) error {
	if !role.Valid() {
		return &ce.DaoError{BadValidation: true, Message: "Role must be one of owner, admin, agent, member"}
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := d.fetchForUpdate(tx, orgUUID, uuid)
		if err != nil {
			return err
		}
		if member.Role == role {
			return nil
		}
		if member.Role == models.RoleOwner && role != models.RoleOwner {
			if err := d.guardLastOwner(tx, orgUUID); err != nil {
				return err
			}
		}
		if err := tx.Model(&member).Update("role", role).Error; err != nil {
			return DBErrorToApi(err, "Membership", &uuid)
		}
		return nil
	})
}

func (d membershipDaoImpl) Delete(ctx context.Context, orgUUID string, uuid string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := d.fetchForUpdate(tx, orgUUID, uuid)
		if err != nil {
			return err
		}
		if member.Role == models.RoleOwner {
			if err := d.guardLastOwner(tx, orgUUID); err != nil {
				return err
			}
		}
		if err := tx.Delete(&member).Error; err != nil {
			return DBErrorToApi(err, "Membership", &uuid)
		}
		return nil
	})
}

// fetchForUpdate loads and row-locks the membership being changed. The last
// owner check takes its own locks on the owner set, see guardLastOwner.
func (d membershipDaoImpl) fetchForUpdate(tx *gorm.DB, orgUUID string, uuid string) (models.Membership, error) {
	found := models.Membership{}
	result := tx.
		Clauses(forUpdateClause).
		Where("uuid = ? AND organization_uuid = ?", UuidifyString(uuid), UuidifyString(orgUUID)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "Membership", &uuid)
	}
	return found, nil
}

// ownerRows selects an organization's owner memberships row-locked in uuid
// order, so concurrent owner changes serialize on the same rows.
func ownerRows(tx *gorm.DB, orgUUID string) *gorm.DB {
	return tx.
		Clauses(forUpdateClause).
		Where("organization_uuid = ? AND role = ?", UuidifyString(orgUUID), models.RoleOwner).
		Order("uuid")
}

// guardLastOwner rejects removing or demoting the only remaining owner, an
// organization must always have at least one. Aggregates cannot take row
// locks, so it locks the owner rows themselves and counts what it locked:
// concurrent demotions of two different owners serialize on the same rows
// instead of each counting the other as remaining.
func (d membershipDaoImpl) guardLastOwner(tx *gorm.DB, orgUUID string) error {
	var owners []models.Membership
	result := ownerRows(tx, orgUUID).Find(&owners)
	if result.Error != nil {
		return DBErrorToApi(result.Error, "Membership", nil)
	}
	if len(owners) <= 1 {
		return &ce.DaoError{BadValidation: true, Message: "Cannot remove or demote the last owner of an organization"}
	}
	return nil
}

func (d membershipDaoImpl) RoleOf(ctx context.Context, orgUUID string, userUUID string) (models.Role, error) {
	found := models.Membership{}
	result := d.db.WithContext(ctx).
		Where("organization_uuid = ? AND user_uuid = ?", UuidifyString(orgUUID), userUUID).
		First(&found)
	if result.Error != nil {
		daoErr := DBErrorToApi(result.Error, "Membership", nil)
		if daoErr.NotFound {
			daoErr.Message = "User is not a member of this organization"
		}
		return "", daoErr
	}
	return found.Role, nil
}

func MembershipModelToApiFields(member models.Membership, apiMember *api.MembershipResponse) {
	apiMember.UUID = member.UUID
	apiMember.OrganizationUUID = member.OrganizationUUID
	apiMember.UserUUID = member.UserUUID
	apiMember.Role = string(member.Role)
	if member.User != nil {
		apiMember.UserEmail = member.User.Email
		apiMember.UserFullName = member.User.FullName
	}
}
