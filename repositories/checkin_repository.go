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

// ICheckInRepository is the append-only check-in register. Entries are
// never updated or deleted through it.
type ICheckInRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	FindByEventAndGuest(ctx context.Context, eventID, guestID uint) (*models.CheckIn, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.CheckIn, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
}

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository() ICheckInRepository {
	return &CheckInRepository{db: configs.GetDB()}
}

func NewCheckInRepositoryTx(tx *gorm.DB) ICheckInRepository {
	return &CheckInRepository{db: tx}
}

func (r *CheckInRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create appends one arrival. A second insert for the same (event, guest)
// hits the unique index and comes back as ErrDuplicate; callers report it
// as "already arrived" rather than as a failure.
func (r *CheckInRepository) Create(ctx context.Context, checkIn *models.CheckIn) error {
	if checkIn == nil || checkIn.EventID == 0 || checkIn.GuestID == 0 {
		return errors.New("check-in sem evento ou convidado")
	}
	err := r.getDB(ctx).Create(checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		configslog.Log.Error("check-in insert failed",
			zap.Uint("eventID", checkIn.EventID), zap.Uint("guestID", checkIn.GuestID), zap.Error(err))
		return err
	}
	return nil
}

func (r *CheckInRepository) FindByEventAndGuest(ctx context.Context, eventID, guestID uint) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	err := r.getDB(ctx).Where("event_id = ? AND guest_id = ?", eventID, guestID).First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.CheckIn, error) {
	var checkIns []models.CheckIn
	err := r.getDB(ctx).Preload("Guest").
		Where("event_id = ?", eventID).
		Order("checked_at desc").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *CheckInRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&models.CheckIn{}).Where("event_id = ?", eventID).Count(&total).Error
	return total, err
}
