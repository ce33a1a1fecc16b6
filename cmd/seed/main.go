package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentier/internal/config"
	"rentier/internal/db"
	apperrors "rentier/internal/errors"
	"rentier/internal/model"
	"rentier/internal/repository"
)

// Demo fixtures mirroring the kind of history a real account accumulates.
// Passwords satisfy the registration policy so the same accounts work through
// the login endpoint.
var seedUsers = []struct {
	email    string
	password string
}{
	{"user_1@example.com", "Password1234!"},
	{"user_2@example.com", "Password567890!"},
}

type seedEntry struct {
	userIdx    int
	input      model.EntryInput
	prediction float64
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

var seedEntries = []seedEntry{
	{
		userIdx: 0,
		input: model.EntryInput{
			Beds: 2, Bathrooms: 1, Accomodates: 3, MinimumNights: 90,
			RoomType: "Shared room", Neighborhood: "Marine Parade",
			Wifi: true, Elevator: true,
		},
		prediction: 95.09,
	},
	{
		userIdx: 1,
		input: model.EntryInput{
			Beds: 3, Bathrooms: 1, Accomodates: 6, MinimumNights: 90,
			RoomType: "Private room", Neighborhood: "Tampines",
			Wifi:        true,
			ActualPrice: floatPtr(178),
			Link:        strPtr("https://www.airbnb.com/rooms/71609"),
		},
		prediction: 155.06,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Entry{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	entries := repository.NewEntryRepository(gormDB)

	ids := make([]uint, len(seedUsers))
	for i, su := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user, err := model.NewUser(su.email, string(hashed), time.Now().UTC())
		if err != nil {
			log.Fatalf("Invalid seed user %s: %v", su.email, err)
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				existing, err := users.FindByEmail(ctx, su.email)
				if err != nil {
					log.Fatalf("Failed to load existing user %s: %v", su.email, err)
				}
				log.Printf("User %s already exists (id=%d)", su.email, existing.ID)
				ids[i] = existing.ID
				continue
			}
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		log.Printf("Created user %s (id=%d)", su.email, user.ID)
		ids[i] = user.ID
	}

	for _, se := range seedEntries {
		entry, err := model.NewEntry(ids[se.userIdx], se.input, se.prediction, time.Now().UTC())
		if err != nil {
			log.Fatalf("Invalid seed entry: %v", err)
		}
		if err := entries.Create(ctx, entry); err != nil {
			log.Fatalf("Failed to create entry: %v", err)
		}
		log.Printf("Created entry %d for user %d (prediction=%.2f)", entry.ID, entry.UserID, entry.Prediction)
	}

	log.Println("Seed complete")
}
