package seeders

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// SeedMainEvent creates the single main event the check-in terminal
// records arrivals against. Skipped when a main event already exists.
func SeedMainEvent(db *gorm.DB) error {
	ctx := context.Background()
	repo := repositories.NewEventRepositoryTx(db)

	if existing, err := repo.FindMain(ctx); err == nil {
		configslog.SLog.Infof("main event %q already exists, skipping", existing.Name)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	luanda, err := time.LoadLocation("Africa/Luanda")
	if err != nil {
		luanda = time.FixedZone("WAT", 1*60*60)
	}

	event := models.Event{
		Name:     "Casamento de Alexandre & Adália",
		Venue:    "Luanda",
		StartsAt: time.Date(2025, time.November, 29, 12, 0, 0, 0, luanda),
		IsMain:   true,
	}
	if err := repo.Create(ctx, &event); err != nil {
		configslog.Log.Error("main event creation failed", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("main event %q created (ID: %d)", event.Name, event.ID)
	return nil
}
