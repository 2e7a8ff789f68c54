package jobs

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

const defaultCloseAfterDays = 7

// CloseResolvedTickets closes every ticket that has sat in resolved for longer
// than the given number of days (first arg, defaults to 7). Each closed ticket
// gets a timeline entry so the transition stays auditable.
func CloseResolvedTickets(args []string) {
	days := defaultCloseAfterDays
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			log.Fatal().Msgf("Usage: close-resolved-tickets [DAYS], got %q", args[0])
		}
		days = parsed
	}

	err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var tickets []models.Ticket
	result := db.DB.
		Where("status = ? AND resolved_at < ?", models.StatusResolved, cutoff).
		Find(&tickets)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("failed to list stale resolved tickets")
	}

	closed := 0
	for _, ticket := range tickets {
		now := time.Now()
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			updates := map[string]any{
				"status":    models.StatusClosed,
				"closed_at": now,
			}
			if err := tx.Model(&models.Ticket{}).Where("uuid = ?", ticket.UUID).Updates(updates).Error; err != nil {
				return err
			}
			activity := models.TicketActivity{
				TicketUUID:   ticket.UUID,
				ActivityType: models.ActivityClosed,
				Description:  "Closed automatically after staying resolved",
				OldValue:     map[string]any{"status": string(models.StatusResolved)},
				NewValue:     map[string]any{"status": string(models.StatusClosed)},
			}
			return tx.Create(&activity).Error
		})
		if err != nil {
			log.Error().Err(err).Str("ticket", ticket.UUID).Msg("failed to close ticket")
			continue
		}
		closed++
	}
	log.Info().Msgf("Closed %d of %d stale resolved tickets", closed, len(tickets))
}
