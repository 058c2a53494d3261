package configs

import (
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
)

var db *gorm.DB

// SetDB installs the shared connection. Called by configsdatabase.InitDB
// and by tests that point the repositories at an in-memory database.
func SetDB(conn *gorm.DB) {
	db = conn
}

// GetDB returns the shared connection. InitDB must have run first.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB called before InitDB")
	}
	return db
}
