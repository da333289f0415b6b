// Command seed loads a demo farmer account and a few logbook entries into the
// SQLite database so a fresh checkout has something to look at.
//
// Usage:
//
//	go run ./cmd/seed -db croppilot.db
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/store"
)

const (
	demoPhone    = "9876543210"
	demoPassword = "demo123"
)

func main() {
	dbPath := flag.String("db", "croppilot.db", "path to the SQLite database")
	flag.Parse()

	if err := run(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	ctx := context.Background()

	db, err := store.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.FindByPhone(ctx, demoPhone); err == nil {
		fmt.Println("demo account already exists, nothing to do")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         "Demo Farmer",
		Phone:        demoPhone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(ctx, user); err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	entries := []domain.FarmLog{
		{
			CropName:            "Wheat",
			SowingDate:          date(2025, 11, 12),
			ExpectedHarvestDate: date(2026, 3, 25),
			MoneySpent:          14500,
			MoneyEarned:         36000,
			Notes:               "HD-2967 variety, two irrigations",
		},
		{
			CropName:            "Rice",
			SowingDate:          date(2026, 6, 18),
			ExpectedHarvestDate: date(2026, 10, 20),
			MoneySpent:          11000,
			Notes:               "transplanted after good pre-monsoon showers",
		},
		{
			CropName:    "Mustard",
			SowingDate:  date(2025, 10, 5),
			MoneySpent:  4200,
			MoneyEarned: 9800,
		},
	}
	for i, entry := range entries {
		entry.ID = uuid.NewString()
		entry.UserID = user.ID
		// Stagger creation times so the list order is stable.
		entry.CreatedAt = time.Now().UTC().Add(time.Duration(i-len(entries)) * time.Minute)
		if err := db.Append(ctx, entry); err != nil {
			return fmt.Errorf("seed logbook entry %q: %w", entry.CropName, err)
		}
	}

	fmt.Printf("seeded demo account (phone %s, password %s) with %d logbook entries\n", demoPhone, demoPassword, len(entries))
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
