package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/infobajajangola-cmd/casamentop/models"
)

func TestCreateGuestValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)

	if _, err := svc.CreateGuest(context.Background(), GuestInput{Name: "  "}); !errors.Is(err, ErrGuestInvalidInput) {
		t.Errorf("blank name: error = %v, want ErrGuestInvalidInput", err)
	}
	if _, err := svc.CreateGuest(context.Background(), GuestInput{Name: "Mariana", FamilySide: "primo"}); !errors.Is(err, ErrGuestInvalidInput) {
		t.Errorf("bad family side: error = %v, want ErrGuestInvalidInput", err)
	}

	guest, err := svc.CreateGuest(context.Background(), GuestInput{
		Name: " Mariana Costa ", Category: models.CategoryNameFamily,
		FamilySide: models.FamilySideBride, MaxAdults: 2,
	})
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	if guest.Name != "Mariana Costa" {
		t.Errorf("name = %q, want trimmed", guest.Name)
	}
	if guest.TicketCode == "" {
		t.Error("ticket code not assigned")
	}
}

func TestSearchMinimumLength(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)
	createTestGuest(t, db, "Mariana Costa", 1, 0)

	short, err := svc.Search(context.Background(), "Ma")
	if err != nil {
		t.Fatalf("short search: %v", err)
	}
	if len(short) != 0 {
		t.Errorf("short term returned %d results, want 0", len(short))
	}

	found, err := svc.Search(context.Background(), "mariana")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Mariana Costa" {
		t.Errorf("results = %+v, want Mariana Costa", found)
	}
}

func TestImportGuests(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)

	csvData := strings.Join([]string{
		"nome,categoria,lado,max_adultos,max_criancas",
		"Mariana Costa,Family,noiva,2,1",
		"Paulo Neto",
		",Family,noivo,1,0",
		"Rui Silva,,ambos",
	}, "\n")

	result, err := svc.ImportGuests(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportGuests: %v", err)
	}
	if result.Imported != 3 || result.Skipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 3/1", result.Imported, result.Skipped)
	}

	var mariana models.Guest
	if err := db.Where("name = ?", "Mariana Costa").First(&mariana).Error; err != nil {
		t.Fatalf("loading imported guest: %v", err)
	}
	if mariana.MaxAdults != 2 || mariana.MaxChildren != 1 || mariana.FamilySide != models.FamilySideBride {
		t.Errorf("imported guest = %+v, want 2 adults, 1 child, noiva", mariana)
	}

	var paulo models.Guest
	if err := db.Where("name = ?", "Paulo Neto").First(&paulo).Error; err != nil {
		t.Fatalf("loading name-only guest: %v", err)
	}
	if paulo.Category != models.CategoryNameFriend || paulo.MaxAdults != 1 {
		t.Errorf("defaults not applied: %+v", paulo)
	}
	if paulo.TicketCode == "" || paulo.TicketCode == mariana.TicketCode {
		t.Error("imported guests must get distinct ticket codes")
	}
}

// The full journey of one invitation: imported, confirmed with companions,
// admitted at the door, and blocked on the second scan.
func TestImportConfirmCheckInRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	event := createTestEvent(t, db)
	guestSvc := newGuestServiceForTest(db)
	rsvpSvc := newRSVPServiceForTest(db)
	checkInSvc := newCheckInServiceForTest(db)

	if _, err := guestSvc.ImportGuests(context.Background(),
		strings.NewReader("Paulo Neto,Family,noivo,3,0")); err != nil {
		t.Fatalf("import: %v", err)
	}
	var guest models.Guest
	if err := db.Where("name = ?", "Paulo Neto").First(&guest).Error; err != nil {
		t.Fatalf("loading imported guest: %v", err)
	}

	rsvp, err := rsvpSvc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"Maria Silva", "Rui Silva"})
	if err != nil {
		t.Fatalf("confirming: %v", err)
	}
	if rsvp.Adults != 3 {
		t.Fatalf("adults = %d, want 3", rsvp.Adults)
	}

	checkIn, err := checkInSvc.ConfirmEntry(context.Background(),
		guest.ID, event.ID, rsvp.Adults, rsvp.Children, "Operador")
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}

	status, err := checkInSvc.Lookup(context.Background(), guest.TicketCode)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if status.State != EntryAlreadyArrived {
		t.Errorf("state = %q, want already_arrived", status.State)
	}
	if status.Guest.CheckedInAt == nil || !status.Guest.CheckedInAt.Equal(checkIn.CheckedAt) {
		t.Errorf("arrival timestamp = %v, want %v", status.Guest.CheckedInAt, checkIn.CheckedAt)
	}
}

func TestGetEventStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)
	rsvpSvc := newRSVPServiceForTest(db)

	solo := createTestGuest(t, db, "Mariana Costa", 1, 0)
	family := createTestGuest(t, db, "Paulo Neto", 3, 1)
	declined := createTestGuest(t, db, "Rui Silva", 1, 0)
	createTestGuest(t, db, "Sem Resposta", 2, 0)

	if _, err := rsvpSvc.SubmitResponse(context.Background(), solo.ID, true, nil); err != nil {
		t.Fatalf("confirming solo: %v", err)
	}
	if _, err := rsvpSvc.SubmitResponse(context.Background(), family.ID, true,
		[]string{"Maria Silva", "Ana Neto"}); err != nil {
		t.Fatalf("confirming family: %v", err)
	}
	if _, err := rsvpSvc.SubmitResponse(context.Background(), declined.ID, false, nil); err != nil {
		t.Fatalf("declining: %v", err)
	}

	stats, err := svc.GetEventStats(context.Background())
	if err != nil {
		t.Fatalf("GetEventStats: %v", err)
	}
	if stats.TotalGuests != 4 || stats.Confirmed != 2 || stats.Declined != 1 || stats.Pending != 1 {
		t.Errorf("counts = %+v, want 4 total, 2 confirmed, 1 declined, 1 pending", stats)
	}
	// Two unanswered or declined invitations count one person each; the
	// confirmed ones contribute their declared headcounts (1 and 3).
	if stats.TotalPax != 6 {
		t.Errorf("TotalPax = %d, want 6", stats.TotalPax)
	}
	if stats.ResponseRate != 75 {
		t.Errorf("ResponseRate = %v, want 75", stats.ResponseRate)
	}
	if stats.VenueCapacity != 200 || stats.CapacityUsage != 3 {
		t.Errorf("capacity = %d at %v%%, want 200 at 3%%", stats.VenueCapacity, stats.CapacityUsage)
	}
}

func TestExportCSVAndJSON(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)
	rsvpSvc := newRSVPServiceForTest(db)

	guest := createTestGuest(t, db, "Paulo Neto", 3, 0)
	if _, err := rsvpSvc.SubmitResponse(context.Background(), guest.ID, true,
		[]string{"Maria Silva"}); err != nil {
		t.Fatalf("confirming: %v", err)
	}
	createTestGuest(t, db, "Sem Resposta", 1, 0)

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "nome,categoria,lado") {
		t.Errorf("csv header missing, got %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "Paulo Neto") || !strings.Contains(out, "confirmed") {
		t.Errorf("csv missing confirmed guest, got:\n%s", out)
	}

	payload, err := svc.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var rows []ExportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("export rows = %d, want 2", len(rows))
	}
	byName := map[string]ExportRow{}
	for _, row := range rows {
		byName[row.Name] = row
	}
	if byName["Paulo Neto"].Adults != 2 || len(byName["Paulo Neto"].CompanionNames) != 1 {
		t.Errorf("confirmed row = %+v, want 2 adults with 1 companion", byName["Paulo Neto"])
	}
	if byName["Sem Resposta"].Status != string(models.RSVPStatusPending) {
		t.Errorf("unanswered row status = %q, want pending", byName["Sem Resposta"].Status)
	}
}

func TestUpdateAndDeleteGuest(t *testing.T) {
	db := setupTestDB(t)
	svc := newGuestServiceForTest(db)
	guest := createTestGuest(t, db, "Mariana Costa", 1, 0)

	err := svc.UpdateGuest(context.Background(), guest.ID, GuestInput{
		Name: "Mariana C. Santos", Category: models.CategoryNameVIP,
		FamilySide: models.FamilySideBride, MaxAdults: 2, MaxChildren: 1,
	})
	if err != nil {
		t.Fatalf("UpdateGuest: %v", err)
	}
	updated, err := svc.GetGuestByID(context.Background(), guest.ID)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if updated.Name != "Mariana C. Santos" || updated.MaxPax() != 3 {
		t.Errorf("updated guest = %+v", updated)
	}
	if updated.TicketCode != guest.TicketCode {
		t.Error("update must not rotate the ticket code")
	}

	if err := svc.UpdateGuest(context.Background(), 9999, GuestInput{Name: "Ninguém"}); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("updating missing guest: error = %v, want ErrGuestNotFound", err)
	}

	if err := svc.DeleteGuest(context.Background(), guest.ID); err != nil {
		t.Fatalf("DeleteGuest: %v", err)
	}
	if _, err := svc.GetGuestByID(context.Background(), guest.ID); !errors.Is(err, ErrGuestNotFound) {
		t.Errorf("after delete: error = %v, want ErrGuestNotFound", err)
	}
}
