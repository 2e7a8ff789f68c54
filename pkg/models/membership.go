package models

import (
	"gorm.io/gorm"
)

// Role is the privilege level binding a user to an organization, totally
// ordered: owner > admin > agent > member.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleAgent  Role = "agent"
	RoleMember Role = "member"
)

var roleRank = map[Role]int{
	RoleMember: 1,
	RoleAgent:  2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasAtLeast reports whether r carries at least the privilege of required.
// Unknown roles never satisfy any requirement.
func (r Role) HasAtLeast(required Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return rr >= req
}

// Membership binds a user to an organization with a role. There is exactly
// one membership per (organization, user) pair.
type Membership struct {
	Base
	OrganizationUUID string `json:"organization_uuid" gorm:"column:organization_uuid;not null"`
	UserUUID         string `json:"user_uuid" gorm:"column:user_uuid;not null"`
	Role             Role   `json:"role" gorm:"not null;default:member"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationUUID"`
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserUUID"`
}

func (m *Membership) TableName() string {
	return "organization_members"
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if err := m.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if m.OrganizationUUID == "" {
		return Error{Message: "Organization UUID cannot be blank.", Validation: true}
	}
	if m.UserUUID == "" {
		return Error{Message: "User UUID cannot be blank.", Validation: true}
	}
	if !m.Role.Valid() {
		return Error{Message: "Role must be one of owner, admin, agent, member.", Validation: true}
	}
	return nil
}
