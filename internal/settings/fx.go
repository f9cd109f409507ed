package settings

import (
	"github.com/smallbiznis/booksync/internal/settings/domain"
	"github.com/smallbiznis/booksync/internal/settings/repository"
	"github.com/smallbiznis/booksync/internal/settings/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.ConnectionSettings{})
}

var Module = fx.Module("settings",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(migrate),
)
