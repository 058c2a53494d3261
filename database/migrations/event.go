package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

func MigrateEventsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		configslog.Log.Error("failed to migrate events table", zap.Error(err))
		return err
	}
	return nil
}
