package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/booksync/internal/config"
	"github.com/smallbiznis/booksync/internal/quickbooks"
	"github.com/smallbiznis/booksync/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Cfg  config.Config
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	cfg  config.Config
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("settings.service"),
		cfg:  p.Cfg,
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.ConnectionSettings, error) {
	settings, err := s.repo.Get(ctx, s.db)
	if err != nil {
		return domain.ConnectionSettings{}, err
	}
	if settings == nil {
		return domain.ConnectionSettings{Environment: s.cfg.QuickBooks.Environment}, nil
	}
	return *settings, nil
}

func (s *Service) Save(ctx context.Context, settings domain.ConnectionSettings) error {
	if settings.Environment == "" {
		settings.Environment = s.cfg.QuickBooks.Environment
	}
	return s.repo.Save(ctx, s.db, &settings)
}

func (s *Service) Credentials(ctx context.Context) (quickbooks.Credentials, error) {
	settings, err := s.repo.Get(ctx, s.db)
	if err != nil {
		return quickbooks.Credentials{}, err
	}
	if settings == nil || strings.TrimSpace(settings.AccessToken) == "" {
		return quickbooks.Credentials{}, fmt.Errorf("%w: access token missing", domain.ErrNotConnected)
	}
	if strings.TrimSpace(settings.RealmID) == "" {
		return quickbooks.Credentials{}, fmt.Errorf("%w: realm id missing", domain.ErrNotConnected)
	}

	environment := settings.Environment
	if environment == "" {
		environment = s.cfg.QuickBooks.Environment
	}

	return quickbooks.Credentials{
		AccessToken: settings.AccessToken,
		RealmID:     settings.RealmID,
		BaseURL:     quickbooks.BaseURL(environment),
	}, nil
}
