package jobs

import (
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
)

// PurgeOrphanedUsers deletes mirrored user rows that no longer belong to any
// organization and hold no ticket assignments. Rows reappear on next login, so
// this only trims dead weight left behind by membership removals.
func PurgeOrphanedUsers(args []string) {
	err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	result := db.DB.
		Where("uuid NOT IN (?)", db.DB.Model(&models.Membership{}).Select("user_uuid")).
		Where("uuid NOT IN (?)", db.DB.Model(&models.Ticket{}).Select("assigned_to").Where("assigned_to IS NOT NULL")).
		Delete(&models.User{})
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("failed to purge orphaned users")
	}
	log.Info().Msgf("Purged %d orphaned users", result.RowsAffected)
}
