package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

func MigrateUsersTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		configslog.Log.Error("failed to migrate users table", zap.Error(err))
		return err
	}
	return nil
}
