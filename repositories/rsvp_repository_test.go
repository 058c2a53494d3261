package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infobajajangola-cmd/casamentop/models"
)

func TestUpsertKeepsOneRowPerGuest(t *testing.T) {
	db := openTestDB(t)
	repo := NewRSVPRepositoryTx(db)
	guest := insertGuest(t, db, "Mariana Costa")

	now := time.Now().UTC()
	first := &models.GuestRSVP{
		GuestID:        guest.ID,
		Status:         models.RSVPStatusConfirmed,
		Adults:         2,
		CompanionNames: models.CompanionNames{"Maria Silva"},
		RespondedAt:    &now,
	}
	if err := repo.Upsert(context.Background(), first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &models.GuestRSVP{
		GuestID:        guest.ID,
		Status:         models.RSVPStatusDeclined,
		CompanionNames: models.CompanionNames{},
		RespondedAt:    &now,
	}
	if err := repo.Upsert(context.Background(), second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created row %d, want update of %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&models.GuestRSVP{}).Where("guest_id = ?", guest.ID).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	stored, err := repo.FindByGuestID(context.Background(), guest.ID)
	if err != nil {
		t.Fatalf("FindByGuestID: %v", err)
	}
	if stored.Status != models.RSVPStatusDeclined || stored.Adults != 0 {
		t.Errorf("stored rsvp = %+v, want declined with zero adults", stored)
	}
	if len(stored.CompanionNames) != 0 {
		t.Errorf("companion names = %v, want cleared", stored.CompanionNames)
	}
}

func TestCountByStatusAndConfirmedPax(t *testing.T) {
	db := openTestDB(t)
	repo := NewRSVPRepositoryTx(db)

	fixtures := []struct {
		status   models.RSVPStatus
		adults   int
		children int
	}{
		{models.RSVPStatusConfirmed, 2, 1},
		{models.RSVPStatusConfirmed, 1, 0},
		{models.RSVPStatusDeclined, 0, 0},
	}
	for i, f := range fixtures {
		guest := insertGuest(t, db, "Convidado "+string(rune('A'+i)))
		rsvp := &models.GuestRSVP{
			GuestID: guest.ID, Status: f.status,
			Adults: f.adults, Children: f.children,
			CompanionNames: models.CompanionNames{},
		}
		if err := db.Create(rsvp).Error; err != nil {
			t.Fatalf("inserting fixture %d: %v", i, err)
		}
	}

	counts, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[models.RSVPStatusConfirmed] != 2 || counts[models.RSVPStatusDeclined] != 1 {
		t.Errorf("counts = %v, want 2 confirmed, 1 declined", counts)
	}

	pax, err := repo.SumConfirmedPax(context.Background())
	if err != nil {
		t.Fatalf("SumConfirmedPax: %v", err)
	}
	if pax != 4 {
		t.Errorf("confirmed pax = %d, want 4", pax)
	}
}

func TestFindByGuestIDMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewRSVPRepositoryTx(db)

	if _, err := repo.FindByGuestID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
