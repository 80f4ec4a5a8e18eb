package gorm

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ventas-crm/tracker/migration"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/repository"
)

// Repository リポジトリ実装
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormRepository リポジトリ実装を初期化して生成します
//
// doMigration がtrueの場合、データベースマイグレーションを実行します
func NewGormRepository(db *gorm.DB, logger *zap.Logger, doMigration bool) (*Repository, bool, error) {
	repo := &Repository{
		db:     db,
		logger: logger.Named("repository"),
	}
	if doMigration {
		init, err := migration.Migrate(db)
		if err != nil {
			return nil, false, err
		}
		return repo, init, nil
	}
	return repo, false, nil
}

var _ repository.LocationRepository = (*Repository)(nil)

// SaveLastLocation implements LocationRepository interface.
func (repo *Repository) SaveLastLocation(ctx context.Context, reading model.LocationReading) error {
	if reading.UserID <= 0 {
		return repository.ErrInvalidArgs
	}
	return repo.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model.NewLastLocation(reading)).
		Error
}

// GetLastLocations implements LocationRepository interface.
func (repo *Repository) GetLastLocations(ctx context.Context) ([]model.LocationReading, error) {
	var rows []*model.LastLocation
	if err := repo.db.WithContext(ctx).Order("user_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]model.LocationReading, len(rows))
	for i, row := range rows {
		res[i] = row.Reading()
	}
	return res, nil
}

// GetLastLocation implements LocationRepository interface.
func (repo *Repository) GetLastLocation(ctx context.Context, userID int) (model.LocationReading, error) {
	if userID <= 0 {
		return model.LocationReading{}, repository.ErrNotFound
	}
	var row model.LastLocation
	if err := repo.db.WithContext(ctx).First(&row, &model.LastLocation{UserID: userID}).Error; err != nil {
		return model.LocationReading{}, convertError(err)
	}
	return row.Reading(), nil
}

// DeleteLastLocation implements LocationRepository interface.
func (repo *Repository) DeleteLastLocation(ctx context.Context, userID int) error {
	if userID <= 0 {
		return repository.ErrNotFound
	}
	result := repo.db.WithContext(ctx).Delete(&model.LastLocation{UserID: userID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
