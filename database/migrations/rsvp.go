package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

// MigrateRSVPTable creates guest_rsvps. The guests table must already
// exist for the foreign key.
func MigrateRSVPTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.GuestRSVP{}); err != nil {
		configslog.Log.Error("failed to migrate guest_rsvps table", zap.Error(err))
		return err
	}
	return nil
}
