package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/models"
)

type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindMain(ctx context.Context) (*models.Event, error)
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository() IEventRepository {
	return &EventRepository{db: configs.GetDB()}
}

func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.getDB(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.getDB(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindMain returns the single event check-ins are recorded against.
func (r *EventRepository) FindMain(ctx context.Context) (*models.Event, error) {
	var event models.Event
	err := r.getDB(ctx).Where("is_main = ?", true).Order("id asc").First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}
