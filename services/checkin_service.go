package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// CheckInServiceError marks door-control failures.
type CheckInServiceError string

func (e CheckInServiceError) Error() string { return string(e) }

const (
	ErrCheckInGuestNotFound CheckInServiceError = "convidado não encontrado"
	ErrEntryNotAllowed      CheckInServiceError = "entrada negada: convite não confirmado"
	ErrAlreadyCheckedIn     CheckInServiceError = "check-in já realizado"
	ErrEventNotConfigured   CheckInServiceError = "nenhum evento principal configurado"
	ErrCheckInFailed        CheckInServiceError = "não foi possível registar a entrada"
)

// EntryState is derived fresh on every lookup from two independent facts:
// the RSVP status and the arrival marker. It is never persisted.
type EntryState string

const (
	EntryNotFound       EntryState = "not_found"
	EntryNotConfirmed   EntryState = "not_confirmed"
	EntryEligible       EntryState = "eligible"
	EntryAlreadyArrived EntryState = "already_arrived"
)

// EntryStatus is what the terminal displays after a lookup.
type EntryStatus struct {
	State   EntryState
	Guest   *models.Guest
	RSVP    *models.GuestRSVP
	CheckIn *models.CheckIn
}

// DeriveEntryState is the eligibility function, total over every
// combination of RSVP presence/status and arrival marker. An arrival
// always dominates: whatever the RSVP says now, a guest who is inside is
// reported as already arrived, never re-admitted.
func DeriveEntryState(guest *models.Guest, rsvp *models.GuestRSVP) EntryState {
	switch {
	case guest == nil:
		return EntryNotFound
	case guest.HasArrived():
		return EntryAlreadyArrived
	case rsvp.IsConfirmed():
		return EntryEligible
	default:
		return EntryNotConfirmed
	}
}

// GuestResolver turns a scanned or typed token into a guest. The default
// implementation understands ticket codes and exact names; a future QR
// decoder only needs to implement this.
type GuestResolver interface {
	Resolve(ctx context.Context, token string) (*models.Guest, error)
}

// directoryResolver tries the ticket code first and falls back to an
// exact case-insensitive name match. Homonyms resolve to the guest with
// the lowest id; the ticket code is the unambiguous path.
type directoryResolver struct {
	guests repositories.IGuestRepository
}

func (r *directoryResolver) Resolve(ctx context.Context, token string) (*models.Guest, error) {
	guest, err := r.guests.FindByTicketCode(ctx, token)
	if err == nil {
		return guest, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	return r.guests.FindByExactName(ctx, token)
}

// ICheckInService is the door-control workflow.
type ICheckInService interface {
	MainEvent(ctx context.Context) (*models.Event, error)
	Lookup(ctx context.Context, term string) (*EntryStatus, error)
	ConfirmEntry(ctx context.Context, guestID, eventID uint, adults, children int, checkedBy string) (*models.CheckIn, error)
}

type CheckInService struct {
	db        *gorm.DB
	resolver  GuestResolver
	guestRepo repositories.IGuestRepository
	rsvpRepo  repositories.IRSVPRepository
	checkRepo repositories.ICheckInRepository
	eventRepo repositories.IEventRepository
}

func NewCheckInService() ICheckInService {
	guestRepo := repositories.NewGuestRepository()
	return &CheckInService{
		db:        configs.GetDB(),
		resolver:  &directoryResolver{guests: guestRepo},
		guestRepo: guestRepo,
		rsvpRepo:  repositories.NewRSVPRepository(),
		checkRepo: repositories.NewCheckInRepository(),
		eventRepo: repositories.NewEventRepository(),
	}
}

// MainEvent resolves the event every entry is recorded against. The
// terminal calls it once at startup; a missing row is a configuration
// error, not something an operator can fix at the door.
func (s *CheckInService) MainEvent(ctx context.Context) (*models.Event, error) {
	event, err := s.eventRepo.FindMain(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotConfigured
		}
		return nil, err
	}
	return event, nil
}

// Lookup resolves the search term and derives the entry state. It never
// mutates storage; an unknown term is a normal outcome, not an error.
func (s *CheckInService) Lookup(ctx context.Context, term string) (*EntryStatus, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &EntryStatus{State: EntryNotFound}, nil
	}

	guest, err := s.resolver.Resolve(ctx, term)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &EntryStatus{State: EntryNotFound}, nil
		}
		configslog.Log.Error("Lookup: resolver failed", zap.String("term", term), zap.Error(err))
		return nil, ErrCheckInFailed
	}

	rsvp, err := s.rsvpRepo.FindByGuestID(ctx, guest.ID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("Lookup: rsvp load failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, ErrCheckInFailed
	}

	status := &EntryStatus{
		State: DeriveEntryState(guest, rsvp),
		Guest: guest,
		RSVP:  rsvp,
	}

	// For a guest already inside, fetch the register entry so the terminal
	// can show when the ticket was used.
	if status.State == EntryAlreadyArrived {
		if event, evErr := s.eventRepo.FindMain(ctx); evErr == nil {
			if checkIn, ciErr := s.checkRepo.FindByEventAndGuest(ctx, event.ID, guest.ID); ciErr == nil {
				status.CheckIn = checkIn
			}
		}
	}
	return status, nil
}

// ConfirmEntry appends one register entry and stamps the guest's arrival,
// atomically. The register's unique (event, guest) index is the real
// guard: when two terminals race past the eligibility check, the loser's
// insert comes back as a duplicate and is reported as already arrived.
// Adults/children are recorded as given; the operator passes the RSVP's
// own numbers.
func (s *CheckInService) ConfirmEntry(ctx context.Context, guestID, eventID uint, adults, children int, checkedBy string) (*models.CheckIn, error) {
	if eventID == 0 {
		return nil, ErrEventNotConfigured
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotConfigured
		}
		return nil, ErrCheckInFailed
	}

	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCheckInGuestNotFound
		}
		return nil, ErrCheckInFailed
	}

	rsvp, err := s.rsvpRepo.FindByGuestID(ctx, guestID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCheckInFailed
	}

	switch DeriveEntryState(guest, rsvp) {
	case EntryEligible:
		// proceed
	case EntryAlreadyArrived:
		return nil, ErrAlreadyCheckedIn
	default:
		return nil, ErrEntryNotAllowed
	}

	checkIn := &models.CheckIn{
		EventID:   eventID,
		GuestID:   guest.ID,
		Adults:    adults,
		Children:  children,
		CheckedBy: checkedBy,
		CheckedAt: time.Now().UTC(),
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		if err := repositories.NewCheckInRepositoryTx(tx).Create(txCtx, checkIn); err != nil {
			return err
		}
		return repositories.NewGuestRepositoryTx(tx).MarkArrived(txCtx, guest.ID, checkIn.CheckedAt)
	})
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrDuplicate) {
			return nil, ErrAlreadyCheckedIn
		}
		configslog.Log.Error("ConfirmEntry: register append failed",
			zap.Uint("guestID", guestID), zap.Uint("eventID", eventID), zap.Error(txErr))
		return nil, ErrCheckInFailed
	}

	configslog.SLog.Infof("check-in convidado #%d no evento #%d (%d adultos, %d crianças)",
		guest.ID, eventID, adults, children)
	return checkIn, nil
}
