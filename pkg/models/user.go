package models

// User mirrors the account record owned by the external auth provider. The
// UUID is the provider's subject id, not generated locally.
type User struct {
	Base
	Email     string `json:"email" gorm:"not null"`
	FullName  string `json:"full_name" gorm:"default:null"`
	AvatarURL string `json:"avatar_url" gorm:"default:null"`
}

func (u *User) TableName() string {
	return "users"
}
