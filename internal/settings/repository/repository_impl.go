package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/booksync/internal/settings/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Get(ctx context.Context, db *gorm.DB) (*domain.ConnectionSettings, error) {
	var settings domain.ConnectionSettings
	err := db.WithContext(ctx).Where("id = ?", domain.SingletonID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, settings *domain.ConnectionSettings) error {
	settings.ID = domain.SingletonID
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
