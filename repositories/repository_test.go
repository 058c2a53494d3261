package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if configslog.Log == nil {
		configslog.InitLogger()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Event{}, &models.Guest{}, &models.GuestRSVP{}, &models.CheckIn{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func insertGuest(t *testing.T, db *gorm.DB, name string) *models.Guest {
	t.Helper()
	guest := &models.Guest{Name: name, MaxAdults: 1, TicketCode: uuid.NewString()}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("inserting guest %q: %v", name, err)
	}
	return guest
}

func insertEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()
	event := &models.Event{Name: "Evento Principal", IsMain: true, StartsAt: time.Now().UTC()}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("inserting event: %v", err)
	}
	return event
}
