package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/db"
	"github.com/ticketing-services/ticketing-backend/pkg/models"
	"github.com/ticketing-services/ticketing-backend/pkg/seeds"
	"github.com/ticketing-services/ticketing-backend/pkg/utils"
	"github.com/urfave/cli/v2"
)

func main() {
	config.Load()
	config.ConfigureLogging()

	app := &cli.App{
		Name:  "ticketing-admin",
		Usage: "Database and seeding tasks for the ticketing backend",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "Apply pending migrations",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "steps", Usage: "number of migrations to apply, 0 applies all"}},
						Action: migrateAction("up"),
					},
					{
						Name:   "down",
						Usage:  "Roll back migrations",
						Flags:  []cli.Flag{&cli.IntFlag{Name: "steps", Usage: "number of migrations to roll back, 0 rolls back all"}},
						Action: migrateAction("down"),
					},
					{
						Name:      "new",
						Usage:     "Create an empty migration file pair",
						ArgsUsage: "NAME",
						Action:    newMigrationAction,
					},
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with sample organizations, members and tickets",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "organizations", Value: 5, Usage: "organizations to create"},
					&cli.IntFlag{Name: "members", Value: 20, Usage: "members per organization"},
					&cli.IntFlag{Name: "categories", Value: 4, Usage: "categories per organization"},
					&cli.IntFlag{Name: "tickets", Value: 100, Usage: "tickets per organization"},
				},
				Action: seedAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func migrateAction(direction string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := db.MigrateDB(db.GetUrl(), direction, c.Int("steps")); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", direction, err)
		}
		log.Debug().Msgf("Successfully migrated %s", direction)
		return nil
	}
}

func newMigrationAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("requires a migration name")
	}
	datetime := time.Now().Format("20060102150405")
	template := "BEGIN;\n-- your migration here\nCOMMIT;\n"

	for _, suffix := range []string{"up", "down"} {
		filename := fmt.Sprintf("./db/migrations/%s_%s.%s.sql", datetime, name, suffix)
		if err := os.WriteFile(filename, []byte(template), 0644); err != nil {
			return err
		}
	}
	// The migration guard reads this file before running anything.
	return os.WriteFile(db.LatestMigrationFile, []byte(datetime+"\n"), 0644)
}

func seedAction(c *cli.Context) error {
	if err := db.Connect(); err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := seeds.SeedOrganizations(db.DB, c.Int("organizations")); err != nil {
		return err
	}

	var orgs []models.Organization
	if err := db.DB.Find(&orgs).Error; err != nil {
		return err
	}
	for _, org := range orgs {
		if err := seeds.SeedMemberships(db.DB, c.Int("members"), org.UUID); err != nil {
			return err
		}
		if err := seeds.SeedTicketCategories(db.DB, c.Int("categories"), org.UUID); err != nil {
			return err
		}

		var categories []models.TicketCategory
		if err := db.DB.Where("organization_uuid = ?", org.UUID).Find(&categories).Error; err != nil {
			return err
		}
		options := seeds.SeedOptions{OrganizationUUID: org.UUID}
		if len(categories) > 0 {
			options.CategoryUUID = utils.Ptr(categories[0].UUID)
		}
		if err := seeds.SeedTickets(db.DB, c.Int("tickets"), options); err != nil {
			return err
		}
	}
	log.Debug().Msg("Successfully seeded")
	return nil
}
