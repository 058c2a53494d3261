package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/database/migrations"
	"github.com/infobajajangola-cmd/casamentop/database/seeders"
)

// Initialize runs migrations and seeders inside a single transaction so a
// half-applied bootstrap never reaches the application.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("neither -migrate nor -seed given, nothing to do")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("could not begin bootstrap transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("database bootstrap panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("bootstrap failed, rolling back", zap.Error(err))
			if rbErr := tx.Rollback().Error; rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("database bootstrap starting")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("migrations failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("migrations finished")
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("seeders finished")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("bootstrap commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("database bootstrap completed")
}

// RunMigrationsInOrder migrates tables parents-first so foreign keys can
// be created as the dependent tables appear.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"categories", migrations.MigrateCategoriesTable},
		{"events", migrations.MigrateEventsTable},
		{"guests", migrations.MigrateGuestsTable},
		{"guest_rsvps", migrations.MigrateRSVPTable},
		{"check_ins", migrations.MigrateCheckInsTable},
	}
	for _, step := range steps {
		configslog.SLog.Infof(" -> migrating %s", step.name)
		if err := step.run(db); err != nil {
			configslog.Log.Error("migration step failed", zap.String("table", step.name), zap.Error(err))
			return err
		}
	}
	return nil
}

// CheckAndRunSeeders inserts the baseline rows the application expects:
// the admin account, the guest categories and the main event.
func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedSystemUser(db); err != nil {
		configslog.Log.Error("system user seeding failed", zap.Error(err))
		return err
	}
	if err := seeders.SeedCategories(db); err != nil {
		configslog.Log.Error("category seeding failed", zap.Error(err))
		return err
	}
	if err := seeders.SeedMainEvent(db); err != nil {
		configslog.Log.Error("main event seeding failed", zap.Error(err))
		return err
	}
	return nil
}
