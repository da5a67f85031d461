package commands

import (
	"fmt"
	"time"

	"github.com/Mathmagicians/theslope/internal/bootstrap"
	"github.com/Mathmagicians/theslope/internal/domain/calendar"
	"github.com/Mathmagicians/theslope/internal/domain/dinner"
	"github.com/Mathmagicians/theslope/internal/domain/household"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var seedModes = []string{
	string(dinner.ModeDineIn),
	string(dinner.ModeDineInLate),
	string(dinner.ModeTakeaway),
	string(dinner.ModeNone),
}

// fakeHouseholds generates count households with one to five inhabitants each.
// Pbs ids are consecutive from a random base so one run never collides with itself.
func fakeHouseholds(faker *gofakeit.Faker, count int, movedIn time.Time) []*household.Household {
	pbsBase := faker.Number(100000, 899999)
	households := make([]*household.Household, 0, count)

	for i := 0; i < count; i++ {
		lastName := faker.LastName()
		h := &household.Household{
			ID:          uuid.NewString(),
			Name:        lastName,
			Address:     faker.Street(),
			PbsID:       pbsBase + i,
			MovedInDate: movedIn,
		}

		members := faker.Number(1, 5)
		for j := 0; j < members; j++ {
			h.Inhabitants = append(h.Inhabitants, fakeInhabitant(faker, h.ID, lastName, j < 2, movedIn))
		}
		households = append(households, h)
	}
	return households
}

func fakeInhabitant(faker *gofakeit.Faker, householdID, lastName string, adult bool, now time.Time) *household.Inhabitant {
	born := faker.DateRange(now.AddDate(-80, 0, 0), now.AddDate(-18, 0, 0))
	if !adult {
		born = faker.DateRange(now.AddDate(-17, 0, 0), now)
	}
	birthDate := calendar.Normalize(born)

	preferences := make(household.DinnerPreferences, len(calendar.Weekdays))
	for _, day := range calendar.Weekdays {
		preferences[day] = dinner.Mode(faker.RandomString(seedModes))
	}

	return &household.Inhabitant{
		ID:                uuid.NewString(),
		HouseholdID:       householdID,
		Name:              faker.FirstName(),
		LastName:          lastName,
		BirthDate:         &birthDate,
		DinnerPreferences: preferences,
	}
}

// SeedCmd fills an empty database with demo households for local development.
func (commandHandler *MaintenanceCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) error {
	count, err := cmd.Flags().GetInt("households")
	if err != nil {
		return fmt.Errorf("invalid households flag: %w", err)
	}
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil {
		return fmt.Errorf("invalid seed flag: %w", err)
	}
	if count < 1 {
		return fmt.Errorf("households must be at least 1, got %d", count)
	}

	return commandHandler.withApplication(cmd, func(application *bootstrap.Application, log logger.Logger) error {
		movedIn := calendar.DateOf(application.Clock.Now(), application.Clock.Location())
		for _, h := range fakeHouseholds(gofakeit.New(seed), count, movedIn) {
			if _, err := application.Households.Create(cmd.Context(), h); err != nil {
				return fmt.Errorf("failed to seed household %s: %w", h.Name, err)
			}
		}
		log.Infof("Seeded %d households", count)
		return nil
	})
}

// InitSeedCommands registers the demo data generator.
func InitSeedCommands(rootCmd *cobra.Command) error {
	handler := NewMaintenanceCommandHandler()

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Create demo households and inhabitants",
		RunE:  handler.SeedCmd,
	}
	seedCmd.Flags().IntP("households", "", 10, "Number of households to create")
	seedCmd.Flags().Int64P("seed", "", 0, "Random seed, 0 picks a random one")
	rootCmd.AddCommand(seedCmd)

	return nil
}
