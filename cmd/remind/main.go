// Command remind prints the weekly reminder digest: active cards whose
// annual fee is due this month and has not been waived or paid this year.
package main

import (
	"context"
	"log"
	"os"

	"cardfolio/internal/config"
	"cardfolio/internal/models"
	"cardfolio/internal/repositories"
	"cardfolio/internal/services/catalog"
	"cardfolio/internal/services/portfolio"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	opts := repositories.StoreOptions{
		LockTimeout: cfg.LockTimeout,
		LockRetry:   cfg.LockRetry,
	}
	svc := portfolio.NewService(
		repositories.NewCreditCardRepository(cfg.DataFile, opts),
		repositories.NewTagRepository(cfg.TagsFile, opts),
		catalog.NewDirCatalog(cfg.ImageDir),
		portfolio.Config{ReapplyWindowDays: cfg.ReapplyWindowDays},
		nil,
	)

	cards, err := svc.Reminders(context.Background())
	if err != nil {
		log.Printf("⚠️ Failed to build reminders: %v", err)
		os.Exit(1)
	}
	if len(cards) == 0 {
		log.Println("✅ No annual fees need attention this month")
		return
	}

	for _, c := range cards {
		log.Printf("⚠️ %s: annual fee %s due in %s, call the bank to waive or pay",
			c.DisplayName(), c.AnnualFee.StringFixed(2), models.MonthName(c.FeeDueMonth))
	}
	log.Printf("✅ %d card(s) need a fee decision", len(cards))
}
