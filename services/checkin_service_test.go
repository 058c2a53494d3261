package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infobajajangola-cmd/casamentop/models"
)

func TestDeriveEntryState(t *testing.T) {
	arrivedAt := time.Now().UTC()
	arrived := &models.Guest{CheckedInAt: &arrivedAt}
	fresh := &models.Guest{}

	confirmed := &models.GuestRSVP{Status: models.RSVPStatusConfirmed}
	declined := &models.GuestRSVP{Status: models.RSVPStatusDeclined}
	pending := &models.GuestRSVP{Status: models.RSVPStatusPending}

	cases := []struct {
		name  string
		guest *models.Guest
		rsvp  *models.GuestRSVP
		want  EntryState
	}{
		{"unknown guest", nil, nil, EntryNotFound},
		{"unknown guest with stray rsvp", nil, confirmed, EntryNotFound},
		{"no rsvp", fresh, nil, EntryNotConfirmed},
		{"pending", fresh, pending, EntryNotConfirmed},
		{"declined", fresh, declined, EntryNotConfirmed},
		{"confirmed", fresh, confirmed, EntryEligible},
		{"arrived beats confirmed", arrived, confirmed, EntryAlreadyArrived},
		{"arrived beats declined", arrived, declined, EntryAlreadyArrived},
		{"arrived beats pending", arrived, pending, EntryAlreadyArrived},
		{"arrived without rsvp", arrived, nil, EntryAlreadyArrived},
	}

	for _, tc := range cases {
		if got := DeriveEntryState(tc.guest, tc.rsvp); got != tc.want {
			t.Errorf("%s: state = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestLookupResolvesTicketCodeAndName(t *testing.T) {
	db := setupTestDB(t)
	createTestEvent(t, db)
	svc := newCheckInServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 2, 0)
	if _, err := newRSVPServiceForTest(db).SubmitResponse(context.Background(), guest.ID, true, nil); err != nil {
		t.Fatalf("confirming rsvp: %v", err)
	}

	byCode, err := svc.Lookup(context.Background(), guest.TicketCode)
	if err != nil {
		t.Fatalf("lookup by code: %v", err)
	}
	if byCode.State != EntryEligible {
		t.Errorf("state by code = %q, want eligible", byCode.State)
	}

	byName, err := svc.Lookup(context.Background(), "  mariana costa ")
	if err != nil {
		t.Fatalf("lookup by name: %v", err)
	}
	if byName.State != EntryEligible || byName.Guest == nil || byName.Guest.ID != guest.ID {
		t.Errorf("lookup by name resolved %+v, want guest %d eligible", byName, guest.ID)
	}
}

func TestLookupUnknownTerm(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckInServiceForTest(db)

	for _, term := range []string{"", "   ", "ninguém com este nome"} {
		status, err := svc.Lookup(context.Background(), term)
		if err != nil {
			t.Fatalf("lookup %q: %v", term, err)
		}
		if status.State != EntryNotFound {
			t.Errorf("lookup %q: state = %q, want not_found", term, status.State)
		}
	}
}

func TestLookupHomonymsResolveToLowestID(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckInServiceForTest(db)
	first := createTestGuest(t, db, "Pedro Santos", 1, 0)
	createTestGuest(t, db, "Pedro Santos", 1, 0)

	status, err := svc.Lookup(context.Background(), "Pedro Santos")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if status.Guest == nil || status.Guest.ID != first.ID {
		t.Errorf("resolved guest %+v, want id %d", status.Guest, first.ID)
	}
}

func TestConfirmEntryFullFlow(t *testing.T) {
	db := setupTestDB(t)
	event := createTestEvent(t, db)
	svc := newCheckInServiceForTest(db)
	guest := createTestGuest(t, db, "Paulo Neto", 3, 1)
	if _, err := newRSVPServiceForTest(db).SubmitResponse(context.Background(), guest.ID, true,
		[]string{"Maria Silva", "Rui Silva"}); err != nil {
		t.Fatalf("confirming rsvp: %v", err)
	}

	checkIn, err := svc.ConfirmEntry(context.Background(), guest.ID, event.ID, 3, 0, "Operador")
	if err != nil {
		t.Fatalf("ConfirmEntry: %v", err)
	}
	if checkIn.Adults != 3 || checkIn.Children != 0 {
		t.Errorf("register headcount = %d/%d, want 3/0", checkIn.Adults, checkIn.Children)
	}
	if checkIn.CheckedBy != "Operador" {
		t.Errorf("CheckedBy = %q, want Operador", checkIn.CheckedBy)
	}

	var stored models.Guest
	if err := db.First(&stored, guest.ID).Error; err != nil {
		t.Fatalf("reloading guest: %v", err)
	}
	if stored.CheckedInAt == nil {
		t.Fatal("guest arrival marker not stamped")
	}

	// The second attempt is rejected and the original timestamp survives.
	if _, err := svc.ConfirmEntry(context.Background(), guest.ID, event.ID, 3, 0, "Operador"); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second confirm: error = %v, want ErrAlreadyCheckedIn", err)
	}

	status, err := svc.Lookup(context.Background(), guest.TicketCode)
	if err != nil {
		t.Fatalf("lookup after arrival: %v", err)
	}
	if status.State != EntryAlreadyArrived {
		t.Errorf("state = %q, want already_arrived", status.State)
	}
	if status.CheckIn == nil || !status.CheckIn.CheckedAt.Equal(checkIn.CheckedAt) {
		t.Errorf("lookup check-in = %+v, want original entry at %v", status.CheckIn, checkIn.CheckedAt)
	}
}

func TestConfirmEntryRequiresConfirmedRSVP(t *testing.T) {
	db := setupTestDB(t)
	event := createTestEvent(t, db)
	svc := newCheckInServiceForTest(db)
	rsvpSvc := newRSVPServiceForTest(db)

	noResponse := createTestGuest(t, db, "Sem Resposta", 1, 0)
	if _, err := svc.ConfirmEntry(context.Background(), noResponse.ID, event.ID, 1, 0, ""); !errors.Is(err, ErrEntryNotAllowed) {
		t.Errorf("no rsvp: error = %v, want ErrEntryNotAllowed", err)
	}

	declined := createTestGuest(t, db, "Recusou Convite", 1, 0)
	if _, err := rsvpSvc.SubmitResponse(context.Background(), declined.ID, false, nil); err != nil {
		t.Fatalf("declining: %v", err)
	}
	if _, err := svc.ConfirmEntry(context.Background(), declined.ID, event.ID, 1, 0, ""); !errors.Is(err, ErrEntryNotAllowed) {
		t.Errorf("declined: error = %v, want ErrEntryNotAllowed", err)
	}
}

func TestConfirmEntryUnknownGuestAndEvent(t *testing.T) {
	db := setupTestDB(t)
	event := createTestEvent(t, db)
	svc := newCheckInServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 1, 0)

	if _, err := svc.ConfirmEntry(context.Background(), 9999, event.ID, 1, 0, ""); !errors.Is(err, ErrCheckInGuestNotFound) {
		t.Errorf("unknown guest: error = %v, want ErrCheckInGuestNotFound", err)
	}
	if _, err := svc.ConfirmEntry(context.Background(), guest.ID, 0, 1, 0, ""); !errors.Is(err, ErrEventNotConfigured) {
		t.Errorf("zero event: error = %v, want ErrEventNotConfigured", err)
	}
	if _, err := svc.ConfirmEntry(context.Background(), guest.ID, 9999, 1, 0, ""); !errors.Is(err, ErrEventNotConfigured) {
		t.Errorf("missing event: error = %v, want ErrEventNotConfigured", err)
	}
}

func TestConfirmEntryLosesRaceToRegister(t *testing.T) {
	db := setupTestDB(t)
	event := createTestEvent(t, db)
	svc := newCheckInServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 2, 0)
	if _, err := newRSVPServiceForTest(db).SubmitResponse(context.Background(), guest.ID, true, nil); err != nil {
		t.Fatalf("confirming rsvp: %v", err)
	}

	// Another terminal's register entry landed between this terminal's
	// eligibility check and its insert. The arrival marker is still unset,
	// so only the unique index stands in the way.
	other := &models.CheckIn{
		EventID:   event.ID,
		GuestID:   guest.ID,
		Adults:    1,
		CheckedAt: time.Now().UTC(),
	}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seeding rival entry: %v", err)
	}

	if _, err := svc.ConfirmEntry(context.Background(), guest.ID, event.ID, 1, 0, ""); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("error = %v, want ErrAlreadyCheckedIn", err)
	}

	var count int64
	db.Model(&models.CheckIn{}).Where("event_id = ? AND guest_id = ?", event.ID, guest.ID).Count(&count)
	if count != 1 {
		t.Errorf("register entries = %d, want 1", count)
	}
}

func TestMainEventResolution(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckInServiceForTest(db)

	if _, err := svc.MainEvent(context.Background()); !errors.Is(err, ErrEventNotConfigured) {
		t.Fatalf("error = %v, want ErrEventNotConfigured", err)
	}

	event := createTestEvent(t, db)
	got, err := svc.MainEvent(context.Background())
	if err != nil {
		t.Fatalf("MainEvent: %v", err)
	}
	if got.ID != event.ID {
		t.Errorf("resolved event %d, want %d", got.ID, event.ID)
	}
}
