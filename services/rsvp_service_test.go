package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/infobajajangola-cmd/casamentop/models"
)

func TestSubmitResponseConfirmedWithoutCompanions(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 1, 0)

	rsvp, err := svc.SubmitResponse(context.Background(), guest.ID, true, nil)
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if rsvp.Status != models.RSVPStatusConfirmed {
		t.Errorf("status = %q, want %q", rsvp.Status, models.RSVPStatusConfirmed)
	}
	if rsvp.Adults != 1 || rsvp.Children != 0 {
		t.Errorf("headcount = %d adults, %d children, want 1/0", rsvp.Adults, rsvp.Children)
	}
	if len(rsvp.CompanionNames) != 0 {
		t.Errorf("companion names = %v, want empty", rsvp.CompanionNames)
	}
	if rsvp.RespondedAt == nil {
		t.Error("RespondedAt not set")
	}
}

func TestSubmitResponseDropsBlankCompanionSlots(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Paulo Neto", 3, 0)

	rsvp, err := svc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"  Maria Silva  ", "", "   "})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if rsvp.Adults != 2 {
		t.Errorf("adults = %d, want 2", rsvp.Adults)
	}
	if len(rsvp.CompanionNames) != 1 || rsvp.CompanionNames[0] != "Maria Silva" {
		t.Errorf("companion names = %v, want [Maria Silva]", rsvp.CompanionNames)
	}
}

func TestSubmitResponseRejectsReservedNames(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Paulo Neto", 3, 0)

	_, err := svc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"  Alexandre  "})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(vErr.Violations) != 1 || !strings.Contains(vErr.Violations[0], "Alexandre") {
		t.Errorf("violations = %v, want one naming Alexandre", vErr.Violations)
	}

	// The rejection must leave no trace.
	if _, err := svc.GetByGuestID(context.Background(), guest.ID); !errors.Is(err, ErrRSVPGuestNotFound) {
		t.Fatalf("rsvp exists after rejected submission, err = %v", err)
	}

	// A corrected retry goes through.
	rsvp, err := svc.SubmitResponse(context.Background(), guest.ID, true, []string{"Maria Silva"})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if rsvp.Adults != 2 {
		t.Errorf("adults after retry = %d, want 2", rsvp.Adults)
	}
}

func TestSubmitResponseRejectsOverCapacity(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 1, 0)

	_, err := svc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"Convidado Extra"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestSubmitResponseCollectsAllViolations(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 1, 0)

	// One reserved name and a headcount over the allowance: both problems
	// must be reported in the same response.
	_, err := svc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"adália"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(vErr.Violations) != 2 {
		t.Errorf("violations = %v, want 2 entries", vErr.Violations)
	}
}

func TestSubmitResponseDeclinedZeroesEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)
	guest := createTestGuest(t, db, "Paulo Neto", 3, 1)

	first, err := svc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"Maria Silva", "Rui Silva"})
	if err != nil {
		t.Fatalf("confirming: %v", err)
	}

	// Companions submitted alongside a decline are discarded.
	declined, err := svc.SubmitResponse(context.Background(), guest.ID, false,
		[]string{"Maria Silva"})
	if err != nil {
		t.Fatalf("declining: %v", err)
	}
	if declined.Status != models.RSVPStatusDeclined {
		t.Errorf("status = %q, want declined", declined.Status)
	}
	if declined.Adults != 0 || declined.Children != 0 {
		t.Errorf("headcount = %d/%d, want 0/0", declined.Adults, declined.Children)
	}
	if len(declined.CompanionNames) != 0 {
		t.Errorf("companion names = %v, want empty", declined.CompanionNames)
	}
	if declined.ID != first.ID {
		t.Errorf("second answer created row %d, want update of row %d", declined.ID, first.ID)
	}

	var count int64
	db.Model(&models.GuestRSVP{}).Where("guest_id = ?", guest.ID).Count(&count)
	if count != 1 {
		t.Errorf("rsvp rows for guest = %d, want 1", count)
	}
}

func TestSubmitResponseUnknownGuest(t *testing.T) {
	db := setupTestDB(t)
	svc := newRSVPServiceForTest(db)

	if _, err := svc.SubmitResponse(context.Background(), 9999, true, nil); !errors.Is(err, ErrRSVPGuestNotFound) {
		t.Fatalf("error = %v, want ErrRSVPGuestNotFound", err)
	}
}
