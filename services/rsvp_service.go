package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// RSVPServiceError marks RSVP ledger failures.
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPGuestNotFound RSVPServiceError = "convidado não encontrado"
	ErrRSVPSaveFailed    RSVPServiceError = "não foi possível guardar a resposta, tente novamente"
)

// ValidationError carries every rule a submission breaks, so the form can
// show all problems at once instead of one per round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// IRSVPService is the RSVP confirmation flow.
type IRSVPService interface {
	SubmitResponse(ctx context.Context, guestID uint, attending bool, companions []string) (*models.GuestRSVP, error)
	GetByGuestID(ctx context.Context, guestID uint) (*models.GuestRSVP, error)
	ListResponses(ctx context.Context, limit int) ([]models.GuestRSVP, error)
}

// RSVPService applies the confirmation state machine:
// no response → confirmed | declined, re-enterable through the same upsert.
type RSVPService struct {
	repo          repositories.IRSVPRepository
	guestRepo     repositories.IGuestRepository
	reservedNames []string
}

func NewRSVPService() IRSVPService {
	return &RSVPService{
		repo:          repositories.NewRSVPRepository(),
		guestRepo:     repositories.NewGuestRepository(),
		reservedNames: configs.Get().ReservedNames,
	}
}

// SubmitResponse records the guest's answer.
//
// Declining zeroes the headcount and clears the companion list no matter
// what was submitted. Confirming counts the guest as one adult plus every
// filled-in companion name; reserved names (the hosts) and headcounts
// beyond the invitation's allowance reject the submission before anything
// is written. The write is a single upsert keyed by the guest, so a guest
// answering twice updates the same row.
func (s *RSVPService) SubmitResponse(ctx context.Context, guestID uint, attending bool, companions []string) (*models.GuestRSVP, error) {
	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPGuestNotFound
		}
		configslog.Log.Error("SubmitResponse: guest load failed", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, ErrRSVPSaveFailed
	}

	now := time.Now().UTC()
	rsvp := &models.GuestRSVP{
		GuestID:        guest.ID,
		Status:         models.RSVPStatusDeclined,
		CompanionNames: models.CompanionNames{},
		RespondedAt:    &now,
	}

	if attending {
		names := normalizeCompanionNames(companions)
		if vErr := s.validateConfirmation(guest, names); vErr != nil {
			return nil, vErr
		}
		rsvp.Status = models.RSVPStatusConfirmed
		rsvp.Adults = 1 + len(names)
		rsvp.Children = 0
		rsvp.CompanionNames = names
	}

	if err := s.repo.Upsert(ctx, rsvp); err != nil {
		configslog.Log.Error("SubmitResponse: upsert failed",
			zap.Uint("guestID", guestID), zap.String("status", string(rsvp.Status)), zap.Error(err))
		return nil, ErrRSVPSaveFailed
	}

	configslog.SLog.Infof("rsvp %s para convidado #%d (%d adultos, %d crianças)",
		rsvp.Status, guest.ID, rsvp.Adults, rsvp.Children)
	return rsvp, nil
}

func (s *RSVPService) GetByGuestID(ctx context.Context, guestID uint) (*models.GuestRSVP, error) {
	rsvp, err := s.repo.FindByGuestID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPGuestNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

// ListResponses returns the most recently updated answers with their
// guests, for the dashboard.
func (s *RSVPService) ListResponses(ctx context.Context, limit int) ([]models.GuestRSVP, error) {
	responses, err := s.repo.ListWithGuests(ctx)
	if err != nil {
		configslog.Log.Error("ListResponses failed", zap.Error(err))
		return nil, err
	}
	if limit > 0 && len(responses) > limit {
		responses = responses[:limit]
	}
	return responses, nil
}

// normalizeCompanionNames trims every entry and drops the empty ones,
// preserving order.
func normalizeCompanionNames(names []string) models.CompanionNames {
	out := models.CompanionNames{}
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validateConfirmation checks the companion list against the reserved host
// names and the invitation's allowance, collecting every violation.
func (s *RSVPService) validateConfirmation(guest *models.Guest, names models.CompanionNames) error {
	var violations []string

	for _, name := range names {
		if s.isReservedName(name) {
			violations = append(violations,
				fmt.Sprintf("o nome %q não pode ser adicionado como acompanhante", name))
		}
	}

	if headcount := 1 + len(names); headcount > guest.MaxPax() {
		violations = append(violations,
			fmt.Sprintf("este convite cobre no máximo %d pessoa(s), foram indicadas %d", guest.MaxPax(), headcount))
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (s *RSVPService) isReservedName(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, reserved := range s.reservedNames {
		if normalized == reserved {
			return true
		}
	}
	return false
}
