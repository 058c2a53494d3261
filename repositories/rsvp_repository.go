package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
)

// IRSVPRepository is the RSVP ledger's data access.
type IRSVPRepository interface {
	Upsert(ctx context.Context, rsvp *models.GuestRSVP) error
	FindByGuestID(ctx context.Context, guestID uint) (*models.GuestRSVP, error)
	ListWithGuests(ctx context.Context) ([]models.GuestRSVP, error)
	CountByStatus(ctx context.Context) (map[models.RSVPStatus]int64, error)
	SumConfirmedPax(ctx context.Context) (int64, error)
}

type RSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository() IRSVPRepository {
	return &RSVPRepository{db: configs.GetDB()}
}

func NewRSVPRepositoryTx(tx *gorm.DB) IRSVPRepository {
	return &RSVPRepository{db: tx}
}

func (r *RSVPRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Upsert writes the guest's single RSVP row. An existing row for the same
// guest keeps its id and is updated in place; otherwise one is created.
// Together with the unique index on guest_id this guarantees at most one
// RSVP per guest.
func (r *RSVPRepository) Upsert(ctx context.Context, rsvp *models.GuestRSVP) error {
	if rsvp == nil || rsvp.GuestID == 0 {
		return errors.New("rsvp sem convidado associado")
	}
	db := r.getDB(ctx)

	return db.Where(models.GuestRSVP{GuestID: rsvp.GuestID}).
		Assign(map[string]interface{}{
			"status":          rsvp.Status,
			"adults":          rsvp.Adults,
			"children":        rsvp.Children,
			"companion_names": rsvp.CompanionNames,
			"event_id":        rsvp.EventID,
			"responded_at":    rsvp.RespondedAt,
		}).
		FirstOrCreate(rsvp).Error
}

func (r *RSVPRepository) FindByGuestID(ctx context.Context, guestID uint) (*models.GuestRSVP, error) {
	if guestID == 0 {
		return nil, ErrNotFound
	}
	var rsvp models.GuestRSVP
	err := r.getDB(ctx).Where("guest_id = ?", guestID).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("rsvp lookup failed", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepository) ListWithGuests(ctx context.Context) ([]models.GuestRSVP, error) {
	var rsvps []models.GuestRSVP
	err := r.getDB(ctx).Preload("Guest").Order("updated_at desc").Find(&rsvps).Error
	if err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (r *RSVPRepository) CountByStatus(ctx context.Context) (map[models.RSVPStatus]int64, error) {
	type row struct {
		Status models.RSVPStatus
		Total  int64
	}
	var rows []row
	err := r.getDB(ctx).Model(&models.GuestRSVP{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.RSVPStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// SumConfirmedPax totals adults+children over confirmed RSVPs.
func (r *RSVPRepository) SumConfirmedPax(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&models.GuestRSVP{}).
		Where("status = ?", models.RSVPStatusConfirmed).
		Select("COALESCE(SUM(adults + children), 0)").
		Scan(&total).Error
	return total, err
}
