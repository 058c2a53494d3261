package seeders

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// SeedCategories inserts the guest taxonomy. Existing names are skipped
// so the seeder is safe to run on every deploy.
func SeedCategories(db *gorm.DB) error {
	categoriesToSeed := []models.Category{
		{Name: models.CategoryNameFamily, Description: "Família dos noivos"},
		{Name: models.CategoryNameFriend, Description: "Amigos"},
		{Name: models.CategoryNameWork, Description: "Colegas de trabalho"},
		{Name: models.CategoryNameVIP, Description: "Convidados de honra"},
	}

	ctx := context.Background()
	repo := repositories.NewCategoryRepositoryTx(db)
	var createdCount int64

	for _, category := range categoriesToSeed {
		_, err := repo.FindByName(ctx, category.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Error("category lookup failed",
				zap.String("category", category.Name), zap.Error(err))
			return err
		}
		if err := repo.Create(ctx, &category); err != nil {
			configslog.Log.Error("category creation failed",
				zap.String("category", category.Name), zap.Error(err))
			return err
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d categories seeded", createdCount)
	} else {
		configslog.SLog.Info("all categories already present")
	}
	return nil
}
