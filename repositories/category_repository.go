package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/models"
)

type ICategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByName(ctx context.Context, name string) (*models.Category, error)
	ListAll(ctx context.Context) ([]models.Category, error)
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository() ICategoryRepository {
	return &CategoryRepository{db: configs.GetDB()}
}

func NewCategoryRepositoryTx(tx *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.getDB(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.getDB(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.getDB(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
