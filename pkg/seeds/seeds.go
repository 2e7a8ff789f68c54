package seeds

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"gorm.io/gorm"
)

type SeedOptions struct {
	OrganizationUUID string
	Status           *models.TicketStatus
	Priority         *models.TicketPriority
	CategoryUUID     *string
}

// SeedOrganizations creates size organizations, each with a random subdomain
// and a seeded owner.
func SeedOrganizations(db *gorm.DB, size int) error {
	for i := 0; i < size; i++ {
		owner := models.User{
			Base:     models.Base{UUID: uuid.NewString()},
			Email:    RandomEmail(),
			FullName: fmt.Sprintf("Seed Owner %s", RandStringBytes(5)),
		}
		if result := db.Create(&owner); result.Error != nil {
			return errors.New("could not save seed")
		}

		org := models.Organization{
			Name:      fmt.Sprintf("%s Support", RandStringBytes(8)),
			Subdomain: RandomSubdomain(),
			Profile:   map[string]any{"welcome_message": "How can we help?"},
		}
		if result := db.Create(&org); result.Error != nil {
			return errors.New("could not save seed")
		}

		membership := models.Membership{
			OrganizationUUID: org.UUID,
			UserUUID:         owner.UUID,
			Role:             models.RoleOwner,
		}
		if result := db.Create(&membership); result.Error != nil {
			return errors.New("could not save seed")
		}
	}
	return nil
}

// SeedMemberships adds size members with random non-owner roles to an
// organization.
func SeedMemberships(db *gorm.DB, size int, orgUUID string) error {
	roles := []models.Role{models.RoleAdmin, models.RoleAgent, models.RoleMember}

	for i := 0; i < size; i++ {
		user := models.User{
			Base:     models.Base{UUID: uuid.NewString()},
			Email:    RandomEmail(),
			FullName: fmt.Sprintf("Seed Member %s", RandStringBytes(5)),
		}
		if result := db.Create(&user); result.Error != nil {
			return errors.New("could not save seed")
		}

		membership := models.Membership{
			OrganizationUUID: orgUUID,
			UserUUID:         user.UUID,
			Role:             roles[rand.Intn(len(roles))],
		}
		if result := db.Create(&membership); result.Error != nil {
			return errors.New("could not save seed")
		}
	}
	return nil
}

// SeedTicketCategories creates size categories for an organization.
func SeedTicketCategories(db *gorm.DB, size int, orgUUID string) error {
	var categories []models.TicketCategory

	for i := 0; i < size; i++ {
		categories = append(categories, models.TicketCategory{
			OrganizationUUID: orgUUID,
			Name:             fmt.Sprintf("%s - Category", RandStringBytes(10)),
			Color:            randomColor(),
			SortOrder:        i,
			IsActive:         true,
		})
	}
	if result := db.Create(&categories); result.Error != nil {
		return errors.New("could not save seed")
	}
	return nil
}

// SeedTickets creates size tickets for the organization in options, with
// random statuses and priorities unless options pin them.
func SeedTickets(db *gorm.DB, size int, options SeedOptions) error {
	if options.OrganizationUUID == "" {
		return errors.New("organization uuid is required")
	}
	var tickets []models.Ticket

	for i := 0; i < size; i++ {
		tickets = append(tickets, models.Ticket{
			OrganizationUUID: options.OrganizationUUID,
			Subject:          fmt.Sprintf("%s - Seeded ticket - %s", RandStringBytes(2), RandStringBytes(10)),
			Description:      fmt.Sprintf("Seeded description %s", RandStringBytes(20)),
			Status:           createStatus(options.Status),
			Priority:         createPriority(options.Priority),
			Source:           models.SourcePortal,
			RequesterEmail:   RandomEmail(),
			CategoryUUID:     options.CategoryUUID,
		})
	}
	if result := db.Create(&tickets); result.Error != nil {
		return errors.New("could not save seed")
	}
	return nil
}

func createStatus(existing *models.TicketStatus) models.TicketStatus {
	if existing != nil {
		return *existing
	}
	return models.TicketStatuses[rand.Intn(len(models.TicketStatuses))]
}

func createPriority(existing *models.TicketPriority) models.TicketPriority {
	if existing != nil {
		return *existing
	}
	return models.TicketPriorities[rand.Intn(len(models.TicketPriorities))]
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0xffffff+1))
}

// RandomEmail returns a random address under a seed-only domain.
func RandomEmail() string {
	return fmt.Sprintf("%s@%s.example.com", RandStringLower(8), RandStringLower(6))
}

// RandomSubdomain returns a random valid tenant subdomain.
func RandomSubdomain() string {
	return RandStringLower(12)
}

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const lowerBytes = "abcdefghijklmnopqrstuvwxyz"

func RandStringBytes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func RandStringLower(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = lowerBytes[rand.Intn(len(lowerBytes))]
	}
	return string(b)
}
