package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dimun/agendalo/internal/app"
	"github.com/dimun/agendalo/internal/scheduling/domain"
	"github.com/dimun/agendalo/pkg/config"
)

func newSeedCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small demo data set",
		Long: `Seed inserts a demo role with three people, weekday availability
and business service hours, ready for a generation request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			container, err := app.NewContainer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer container.Close()

			return seed(ctx, container)
		},
	}
}

func seed(ctx context.Context, c *app.Container) error {
	role := domain.Role{
		ID:          uuid.New(),
		Name:        "Support Agent",
		Description: "Front-line customer support",
	}
	if err := c.RoleRepo.Create(ctx, role); err != nil {
		return fmt.Errorf("seed role: %w", err)
	}

	people := []domain.Person{
		{ID: uuid.New(), Name: "Ana Torres", Email: "ana@example.com"},
		{ID: uuid.New(), Name: "Ben Osei", Email: "ben@example.com"},
		{ID: uuid.New(), Name: "Carla Mendez", Email: "carla@example.com"},
	}
	for _, p := range people {
		if err := c.PersonRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed person %s: %w", p.Name, err)
		}
	}

	morning := mustParseTime("08:00:00")
	midday := mustParseTime("14:00:00")
	evening := mustParseTime("20:00:00")

	// Business needs coverage Monday through Friday, morning and afternoon.
	for day := domain.Monday; day <= domain.Friday; day++ {
		d := day
		for _, window := range [][2]domain.TimeOfDay{{morning, midday}, {midday, evening}} {
			rule := domain.BusinessRule{
				HourRule: domain.HourRule{
					ID:          uuid.New(),
					DayOfWeek:   &d,
					StartTime:   window[0],
					EndTime:     window[1],
					IsRecurring: true,
				},
				RoleID: role.ID,
			}
			if err := c.BusinessRepo.Create(ctx, rule); err != nil {
				return fmt.Errorf("seed business hours: %w", err)
			}
		}
	}

	// Each person covers weekdays with a different span so every strategy
	// has room to differ.
	spans := [][2]domain.TimeOfDay{
		{morning, midday},
		{midday, evening},
		{morning, evening},
	}
	for i, p := range people {
		for day := domain.Monday; day <= domain.Friday; day++ {
			d := day
			rule := domain.AvailabilityRule{
				HourRule: domain.HourRule{
					ID:          uuid.New(),
					DayOfWeek:   &d,
					StartTime:   spans[i][0],
					EndTime:     spans[i][1],
					IsRecurring: true,
				},
				PersonID: p.ID,
				RoleID:   role.ID,
			}
			if err := c.AvailabilityRepo.Create(ctx, rule); err != nil {
				return fmt.Errorf("seed availability: %w", err)
			}
		}
	}

	c.Logger.Info("seed data loaded",
		"role_id", role.ID,
		"people", len(people),
	)
	return nil
}

func mustParseTime(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
