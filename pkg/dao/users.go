package dao

import (
	"context"

	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userDaoImpl struct {
	db *gorm.DB
}

func GetUserDao(db *gorm.DB) UserDao {
	return userDaoImpl{db: db}
}

func (d userDaoImpl) Fetch(ctx context.Context, uuid string) (models.User, error) {
	found := models.User{}
	result := d.db.WithContext(ctx).
		Where("uuid = ?", UuidifyString(uuid)).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "User", &uuid)
	}
	return found, nil
}

func (d userDaoImpl) FetchByEmail(ctx context.Context, email string) (models.User, error) {
	found := models.User{}
	result := d.db.WithContext(ctx).
		Where("email = ?", email).
		First(&found)
	if result.Error != nil {
		return found, DBErrorToApi(result.Error, "User", nil)
	}
	return found, nil
}

// Upsert keeps the local user record aligned with the identity provider's
// claims. The uuid is the provider's subject id.
func (d userDaoImpl) Upsert(ctx context.Context, user models.User) error {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "avatar_url"}),
	}).Create(&user)
	if result.Error != nil {
		return DBErrorToApi(result.Error, "User", nil)
	}
	return nil
}
