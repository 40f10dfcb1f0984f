// Command seeder populates a group's cabinet with demo medicines and
// activity so the bot can be exercised against realistic data. It is
// intended to be run offline, not as part of the main server.
//
// Flags:
//
//	--group  group ID to seed (default: demo-group)
//	--dsn    database DSN override (default: from config)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/medikeep/cabinet-backend/internal/adapter/postgres"
	activityrepo "github.com/medikeep/cabinet-backend/internal/adapter/postgres/activity"
	medicinerepo "github.com/medikeep/cabinet-backend/internal/adapter/postgres/medicine"
	"github.com/medikeep/cabinet-backend/internal/app"
	"github.com/medikeep/cabinet-backend/internal/config"
	"github.com/medikeep/cabinet-backend/internal/domain"
)

type seedMedicine struct {
	name     string
	quantity int
	unit     string
	expiry   *time.Time
	location *string
}

func main() {
	groupFlag := flag.String("group", "demo-group", "group ID to seed")
	dsnFlag := flag.String("dsn", "", "database DSN override")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *dsnFlag != "" {
		cfg.Database.DSN = *dsnFlag
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	medicines := medicinerepo.New(pool)
	activity := activityrepo.New(pool)

	actor := domain.Actor{ID: "seeder", DisplayName: "Seeder"}

	soon := time.Now().AddDate(0, 0, 14).UTC()
	nextYear := time.Now().AddDate(1, 0, 0).UTC()
	shelf := "Medicine Shelf"
	fridge := "Fridge"

	seeds := []seedMedicine{
		{name: "Napa", quantity: 20, unit: "tablets", expiry: &nextYear, location: &shelf},
		{name: "Napa Extra", quantity: 10, unit: "tablets", expiry: &nextYear, location: &shelf},
		{name: "Seclo", quantity: 14, unit: "capsules", expiry: &nextYear},
		{name: "Oral Saline", quantity: 5, unit: "pieces", location: &shelf},
		{name: "Insulin", quantity: 2, unit: "bottles", expiry: &soon, location: &fridge},
	}

	for _, s := range seeds {
		med, err := medicines.Insert(ctx, domain.MedicineDraft{
			GroupID:     *groupFlag,
			Name:        s.name,
			Quantity:    s.quantity,
			Unit:        s.unit,
			ExpiryDate:  s.expiry,
			Location:    s.location,
			AddedByID:   actor.ID,
			AddedByName: actor.DisplayName,
		})
		if err != nil {
			logger.Error("insert medicine",
				slog.String("name", s.name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		change := s.quantity
		err = activity.Append(ctx, domain.Activity{
			MedicineID:     med.ID,
			GroupID:        *groupFlag,
			Action:         domain.ActionAdded,
			QuantityChange: &change,
			ActorID:        actor.ID,
			ActorName:      actor.DisplayName,
		})
		if err != nil {
			logger.Error("append activity",
				slog.String("name", s.name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		logger.Info("seeded medicine",
			slog.String("name", med.Name),
			slog.Int("quantity", med.Quantity),
		)
	}

	logger.Info("seeding complete",
		slog.String("group", *groupFlag),
		slog.Int("medicines", len(seeds)),
	)
}
