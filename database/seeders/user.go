package seeders

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

// SeedSystemUser creates the administrator account from the environment.
// An existing account with the configured email is left untouched; the
// password only takes effect on first creation.
func SeedSystemUser(db *gorm.DB) error {
	cfg := configs.Get()

	var existing models.User
	result := db.Where("LOWER(email) = LOWER(?)", cfg.AdminEmail).First(&existing)
	if result.Error == nil {
		configslog.SLog.Infof("admin account %q already exists, skipping", cfg.AdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("admin password hashing failed", zap.Error(err))
		return err
	}

	user := models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		IsSystem:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("admin account creation failed", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("admin account %q created (ID: %d)", user.Email, user.ID)
	return nil
}
