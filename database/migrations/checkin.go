package migrations

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

// MigrateCheckInsTable creates check_ins. The unique (event_id, guest_id)
// index is the arrival guard the whole terminal relies on, so its absence
// after migration is treated as a failed migration rather than a warning.
func MigrateCheckInsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.CheckIn{}); err != nil {
		configslog.Log.Error("failed to migrate check_ins table", zap.Error(err))
		return err
	}
	if !db.Migrator().HasIndex(&models.CheckIn{}, "idx_checkins_event_guest") {
		err := errors.New("unique index idx_checkins_event_guest missing after migration")
		configslog.Log.Error("check_ins table unusable", zap.Error(err))
		return err
	}
	return nil
}
