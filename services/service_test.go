package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// setupTestDB opens a per-test in-memory database with the full schema.
// TranslateError stays on so unique violations surface as
// gorm.ErrDuplicatedKey, the same way they do on Postgres.
func setupTestDB(t *testing.T) *gorm.DB {
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
		&models.User{}, &models.Category{}, &models.Event{},
		&models.Guest{}, &models.GuestRSVP{}, &models.CheckIn{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	configs.SetDB(db)
	return db
}

func createTestGuest(t *testing.T, db *gorm.DB, name string, maxAdults, maxChildren int) *models.Guest {
	t.Helper()
	guest := &models.Guest{
		Name:        name,
		Category:    models.CategoryNameFriend,
		FamilySide:  models.FamilySideBoth,
		MaxAdults:   maxAdults,
		MaxChildren: maxChildren,
		TicketCode:  uuid.NewString(),
	}
	if err := db.Create(guest).Error; err != nil {
		t.Fatalf("creating guest %q: %v", name, err)
	}
	return guest
}

func createTestEvent(t *testing.T, db *gorm.DB) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:     "Casamento de Alexandre & Adália",
		Venue:    "Luanda",
		StartsAt: time.Date(2025, time.November, 29, 12, 0, 0, 0, time.UTC),
		IsMain:   true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("creating event: %v", err)
	}
	return event
}

func newRSVPServiceForTest(db *gorm.DB) *RSVPService {
	return &RSVPService{
		repo:          repositories.NewRSVPRepositoryTx(db),
		guestRepo:     repositories.NewGuestRepositoryTx(db),
		reservedNames: []string{"alexandre", "adália", "adalia"},
	}
}

func newCheckInServiceForTest(db *gorm.DB) *CheckInService {
	guestRepo := repositories.NewGuestRepositoryTx(db)
	return &CheckInService{
		db:        db,
		resolver:  &directoryResolver{guests: guestRepo},
		guestRepo: guestRepo,
		rsvpRepo:  repositories.NewRSVPRepositoryTx(db),
		checkRepo: repositories.NewCheckInRepositoryTx(db),
		eventRepo: repositories.NewEventRepositoryTx(db),
	}
}

func newGuestServiceForTest(db *gorm.DB) *GuestService {
	return &GuestService{
		repo:          repositories.NewGuestRepositoryTx(db),
		rsvpRepo:      repositories.NewRSVPRepositoryTx(db),
		venueCapacity: 200,
	}
}
