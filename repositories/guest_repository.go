package repositories

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/pkg/queryparams"
)

// IGuestRepository is the guest directory's data access.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	CreateBatch(ctx context.Context, guests []*models.Guest) error
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindByExactName(ctx context.Context, name string) (*models.Guest, error)
	FindByTicketCode(ctx context.Context, code string) (*models.Guest, error)
	Search(ctx context.Context, term string, limit int) ([]models.Guest, error)
	ListPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListAllWithRSVP(ctx context.Context) ([]models.Guest, error)
	MarkArrived(ctx context.Context, id uint, at time.Time) error
	Count(ctx context.Context) (int64, error)
	CountArrived(ctx context.Context) (int64, error)
}

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository() IGuestRepository {
	return &GuestRepository{db: configs.GetDB()}
}

// NewGuestRepositoryTx builds a repository bound to an existing handle,
// typically a transaction.
func NewGuestRepositoryTx(tx *gorm.DB) IGuestRepository {
	return &GuestRepository{db: tx}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.getDB(ctx).Create(guest).Error
}

// CreateBatch inserts imported guests in one statement.
func (r *GuestRepository) CreateBatch(ctx context.Context, guests []*models.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	return r.getDB(ctx).Create(&guests).Error
}

func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Model(&models.Guest{}).Where("id = ?", guest.ID).
		Updates(map[string]interface{}{
			"name":         guest.Name,
			"category":     guest.Category,
			"family_side":  guest.FamilySide,
			"max_adults":   guest.MaxAdults,
			"max_children": guest.MaxChildren,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&models.Guest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	err := r.getDB(ctx).Preload("RSVP").First(&guest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &guest, nil
}

// FindByExactName matches the full name case-insensitively. When several
// guests share a name the lowest id wins; the check-in terminal documents
// this tie-break.
func (r *GuestRepository) FindByExactName(ctx context.Context, name string) (*models.Guest, error) {
	var guest models.Guest
	err := r.getDB(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id asc").
		First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) FindByTicketCode(ctx context.Context, code string) (*models.Guest, error) {
	var guest models.Guest
	err := r.getDB(ctx).Where("ticket_code = ?", code).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &guest, nil
}

// Search does a case-insensitive contains match on the name, for the
// guest-facing search screen.
func (r *GuestRepository) Search(ctx context.Context, term string, limit int) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.getDB(ctx).
		Where("LOWER(name) LIKE ?", "%"+lowered(term)+"%").
		Order("name asc").
		Limit(limit).
		Find(&guests).Error
	if err != nil {
		configslog.Log.Error("guest search failed", zap.String("term", term), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// ListPaginated serves the admin guest list. The status filter spans two
// tables: "pending" also covers guests with no RSVP row at all.
func (r *GuestRepository) ListPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	db := r.getDB(ctx).Model(&models.Guest{})

	if params.Query != "" {
		pattern := "%" + lowered(params.Query) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	switch models.RSVPStatus(params.Status) {
	case models.RSVPStatusConfirmed, models.RSVPStatusDeclined:
		db = db.Where("id IN (?)",
			r.getDB(ctx).Model(&models.GuestRSVP{}).Select("guest_id").Where("status = ?", params.Status))
	case models.RSVPStatusPending:
		db = db.Where("id NOT IN (?)",
			r.getDB(ctx).Model(&models.GuestRSVP{}).Select("guest_id").Where("status <> ?", models.RSVPStatusPending))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var guests []models.Guest
	err := db.Preload("RSVP").
		Order(params.OrderClause()).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&guests).Error
	if err != nil {
		configslog.Log.Error("guest list failed", zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(guests, params, total), nil
}

func (r *GuestRepository) ListAllWithRSVP(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.getDB(ctx).Preload("RSVP").Order("name asc").Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// MarkArrived stamps the denormalized arrival marker. The WHERE clause
// only touches guests that have not arrived yet, so the timestamp of the
// first arrival is never overwritten.
func (r *GuestRepository) MarkArrived(ctx context.Context, id uint, at time.Time) error {
	result := r.getDB(ctx).Model(&models.Guest{}).
		Where("id = ? AND checked_in_at IS NULL", id).
		Update("checked_in_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *GuestRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&models.Guest{}).Count(&total).Error
	return total, err
}

func (r *GuestRepository) CountArrived(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&models.Guest{}).Where("checked_in_at IS NOT NULL").Count(&total).Error
	return total, err
}
